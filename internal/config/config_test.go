package config

import "testing"

func TestLoadFromEnv_RejectsForgeableQRSecretOutsideLocal(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", "test-key")

	for _, secret := range []string{"", LocalDevQRSecret} {
		t.Setenv("QR_SIGNING_SECRET", secret)
		if _, err := LoadFromEnv(); err == nil {
			t.Errorf("QR_SIGNING_SECRET=%q must fail to load outside local", secret)
		}
	}

	t.Setenv("QR_SIGNING_SECRET", "an-operator-provided-secret")
	if _, err := LoadFromEnv(); err != nil {
		t.Errorf("a real secret should load: %v", err)
	}
}

func TestLoadFromEnv_LocalToleratesMissingQRSecret(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("JWT_SIGNING_KEY", "test-key")
	t.Setenv("QR_SIGNING_SECRET", "")

	if _, err := LoadFromEnv(); err != nil {
		t.Errorf("local env should load without a QR secret: %v", err)
	}
}

func TestLoadFromEnv_RequiresJWTKey(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("JWT_SIGNING_KEY", "")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("JWT_SIGNING_KEY must always be required")
	}
}
