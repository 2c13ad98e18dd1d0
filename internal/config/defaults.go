// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// defaultConfig returns the built-in fallback values merged in as the lowest
// priority configuration source. Secrets and connection strings have no
// defaults on purpose; validation rejects a config where they stay empty.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment: "development",
		},
		Auth: Auth{
			TokenIssuer:      "go-budget-tracker",
			TokenDuration:    24 * time.Hour,
			BcryptCost:       10,
			MaxLoginAttempts: 5,
			ChallengeTTL:     5 * time.Minute,
			ResetTokenTTL:    10 * time.Minute,
			ResendCooldown:   60 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			CORSOrigin:     "http://localhost:3000",
		},
		Mail: Mail{
			Provider:    "smtp",
			SMTPPort:    587,
			SendTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ChallengeSweepInterval: 5 * time.Minute,
		},
	}
}
