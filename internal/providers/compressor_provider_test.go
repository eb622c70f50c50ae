package providers_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/providers"
)

func TestZstdCompressorRoundTrip(t *testing.T) {
	compressor, err := providers.NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()

	payload := bytes.Repeat([]byte(`{"course_id":"CS201"}`), 200)

	compressed, err := compressor.Compress(payload)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(payload))

	restored, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}
