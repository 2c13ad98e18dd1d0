package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Environment string `json:"environment"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		BcryptCost       int      `json:"bcrypt_cost"`
		MaxLoginAttempts int      `json:"max_login_attempts"`
		ChallengeTTL     Duration `json:"challenge_ttl"`
		ResetTokenTTL    Duration `json:"reset_token_ttl"`
		ResendCooldown   Duration `json:"resend_cooldown"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CORSOrigin     string   `json:"cors_origin"`
	} `json:"server,omitempty"`

	Mail struct {
		Provider     string   `json:"provider"`
		SMTPHost     string   `json:"smtp_host"`
		SMTPPort     int      `json:"smtp_port"`
		SMTPUsername string   `json:"smtp_username"`
		SMTPPassword string   `json:"smtp_password"`
		From         string   `json:"from"`
		APIBaseURL   string   `json:"api_base_url"`
		APIKey       string   `json:"api_key"`
		SendTimeout  Duration `json:"send_timeout"`
	} `json:"mail,omitempty"`

	Workers struct {
		ChallengeSweepInterval Duration `json:"challenge_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment: jsonCfg.App.Environment,
			Version:     jsonCfg.App.Version,
		},
		Auth: Auth{
			TokenSignKey:     jsonCfg.Auth.TokenSignKey,
			TokenIssuer:      jsonCfg.Auth.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.Auth.TokenDuration),
			BcryptCost:       jsonCfg.Auth.BcryptCost,
			MaxLoginAttempts: jsonCfg.Auth.MaxLoginAttempts,
			ChallengeTTL:     time.Duration(jsonCfg.Auth.ChallengeTTL),
			ResetTokenTTL:    time.Duration(jsonCfg.Auth.ResetTokenTTL),
			ResendCooldown:   time.Duration(jsonCfg.Auth.ResendCooldown),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CORSOrigin:     jsonCfg.Server.CORSOrigin,
		},
		Mail: Mail{
			Provider:     jsonCfg.Mail.Provider,
			SMTPHost:     jsonCfg.Mail.SMTPHost,
			SMTPPort:     jsonCfg.Mail.SMTPPort,
			SMTPUsername: jsonCfg.Mail.SMTPUsername,
			SMTPPassword: jsonCfg.Mail.SMTPPassword,
			From:         jsonCfg.Mail.From,
			APIBaseURL:   jsonCfg.Mail.APIBaseURL,
			APIKey:       jsonCfg.Mail.APIKey,
			SendTimeout:  time.Duration(jsonCfg.Mail.SendTimeout),
		},
		Workers: Workers{
			ChallengeSweepInterval: time.Duration(jsonCfg.Workers.ChallengeSweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
