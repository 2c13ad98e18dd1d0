// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenDuration == 0 {
		return ErrInvalidAuthConfigs
	}

	switch cfg.Mail.Provider {
	case "smtp":
		if cfg.Mail.SMTPHost == "" || cfg.Mail.From == "" {
			return ErrInvalidMailConfigs
		}
	case "api":
		if cfg.Mail.APIBaseURL == "" || cfg.Mail.From == "" {
			return ErrInvalidMailConfigs
		}
	default:
		return ErrInvalidMailConfigs
	}

	return nil
}
