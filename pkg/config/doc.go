// Package config loads the verifyemailcode service configuration.
//
// Every section is a struct with env tags read by cleanenv. A .env file in
// the working directory is loaded first when present; variables already
// set in the environment win.
//
//	cfg, err := config.Load()
//	if err != nil {
//		slog.Error("Invalid configuration", "err", err)
//		os.Exit(1)
//	}
//	controllerCfg, err := cfg.VerifyEmailCode.ToControllerConfig()
//
// # Sections
//
//   - VerifyEmailCodeConfig: VERIFY_EMAIL_CODE_FORMAT, VERIFY_EMAIL_LINK_LIFESPAN,
//     VERIFY_EMAIL_REALM_NAME, VERIFY_EMAIL_TEST_ACCOUNTS, VERIFY_EMAIL_TEST_CODE
//   - EmailConfig: EMAIL_HOST, EMAIL_PORT, EMAIL_USERNAME, EMAIL_PASSWORD, EMAIL_FROM, EMAIL_TLS
//   - DatabaseConfig: VERIFY_PG_HOST, VERIFY_PG_PORT, VERIFY_PG_DATABASE, VERIFY_PG_USER, VERIFY_PG_PASSWORD
//   - RedisConfig: REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_KEY_PREFIX
//   - ActionTokenConfig: ACTION_TOKEN_SECRET, ACTION_TOKEN_ISSUER, ACTION_TOKEN_BASE_URL
//   - PersistenceConfig: USER_STORE (memory, postgres), SESSION_STORE (memory, redis)
//
// # Validation
//
// Load validates the sections the selected stores need and returns
// ValidationErrors listing every problem at once. A malformed code format
// is reported here, never on a request.
package config
