// Package config handles loading and validating Casedesk Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (the JWT secret) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - The JWT secret falls back to a compiled-in development value when
//     unset; deployments must set CASEDESK_JWT_SECRET (a startup warning
//     is logged otherwise)
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
