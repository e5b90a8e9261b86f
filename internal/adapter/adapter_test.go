package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeTLSConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingCA", func(t *testing.T) {
		_, err := MakeTLSConfig(
			filepath.Join(dir, "ca.pem"),
			filepath.Join(dir, "cert.pem"),
			filepath.Join(dir, "key.pem"),
		)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		ca := filepath.Join(dir, "bad-ca.pem")
		assert.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))

		_, err := MakeTLSConfig(ca, "cert.pem", "key.pem")
		assert.ErrorIs(t, err, ErrInvalidCA)
	})
}
