package config

import (
	"os"
	"testing"
)

// unsetAll borra las variables que lee Config y las restaura al terminar el test.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "PETS_AUTHORITY", "DB_DRIVER", "DB_PATH", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT"} {
		t.Setenv(k, "") // registra la restauración
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unsetenv %s: %v", k, err)
		}
	}
}
