/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/suparena/dailynote/errors"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvNotionAPIKey    = "NOTION_API_KEY"
	EnvDatabaseID      = "DATABASE_ID"
	EnvAWSRegion       = "AWS_REGION"
	EnvAWSAccessKey    = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey    = "AWS_SECRET_ACCESS_KEY"
	EnvAWSSessionToken = "AWS_SESSION_TOKEN"
	EnvLambdaFunction  = "AWS_LAMBDA_FUNCTION_NAME"
	EnvLockTable       = "DAILY_NOTE_LOCK_TABLE"
	EnvSchemaFile      = "NOTION_SCHEMA_FILE"
	EnvLogLevel        = "LOG_LEVEL"
	EnvAppEnv          = "APP_ENV"
)

// Default Notion property names.
const (
	DefaultTitleProperty = "Name"
	DefaultDateProperty  = "Date"
)

// LookupFunc reads one setting; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Schema names the Notion database properties a daily note is written to.
type Schema struct {
	TitleProperty string `yaml:"title_property"`
	DateProperty  string `yaml:"date_property"`
}

// AWS holds the credentials used to reach DynamoDB.
type AWS struct {
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// Config is loaded once per invocation and not modified afterwards.
type Config struct {
	APIKey     string
	DatabaseID string
	Schema     Schema
	// Hosted is true when running under the scheduled trigger.
	Hosted bool
	// LockTable enables the DynamoDB duplicate guard when non-empty.
	LockTable string
	AWS       AWS
	LogLevel  string
}

type loadOptions struct {
	hosted *bool
}

// Option customizes Load.
type Option func(*loadOptions)

// WithHosted forces the hosted-mode requirements on or off instead of detecting them.
func WithHosted(hosted bool) Option {
	return func(o *loadOptions) {
		o.hosted = &hosted
	}
}

// Load reads and validates the configuration. Required keys are checked in a fixed
// order and only the first missing one is reported.
func Load(lookup LookupFunc, opts ...Option) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		APIKey:     get(EnvNotionAPIKey),
		DatabaseID: get(EnvDatabaseID),
		LockTable:  get(EnvLockTable),
		LogLevel:   get(EnvLogLevel),
		AWS: AWS{
			Region:       get(EnvAWSRegion),
			AccessKey:    get(EnvAWSAccessKey),
			SecretKey:    get(EnvAWSSecretKey),
			SessionToken: get(EnvAWSSessionToken),
		},
	}
	if o.hosted != nil {
		cfg.Hosted = *o.hosted
	} else {
		cfg.Hosted = get(EnvLambdaFunction) != ""
	}

	required := []string{EnvNotionAPIKey, EnvDatabaseID}
	if cfg.Hosted || cfg.LockTable != "" {
		required = append(required, EnvAWSRegion, EnvAWSAccessKey, EnvAWSSecretKey)
	}
	if err := Validate(required, func(key string) string { return get(key) }); err != nil {
		return nil, err
	}

	schema, err := LoadSchema(get(EnvSchemaFile))
	if err != nil {
		return nil, errors.NewInvalidConfigurationError(EnvSchemaFile, err)
	}
	cfg.Schema = schema

	return cfg, nil
}

// Validate returns a ConfigurationError for the first key whose value is empty.
func Validate(keys []string, get func(string) string) error {
	for _, key := range keys {
		if get(key) == "" {
			return errors.NewConfigurationError(key)
		}
	}
	return nil
}

// LoadSchema reads the optional YAML property schema. An empty path yields the defaults.
func LoadSchema(path string) (Schema, error) {
	schema := Schema{
		TitleProperty: DefaultTitleProperty,
		DateProperty:  DefaultDateProperty,
	}
	if path == "" {
		return schema, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var fromFile Schema
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Schema{}, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if fromFile.TitleProperty != "" {
		schema.TitleProperty = fromFile.TitleProperty
	}
	if fromFile.DateProperty != "" {
		schema.DateProperty = fromFile.DateProperty
	}
	return schema, nil
}

// LoadDotenv loads development env files into the process environment unless
// APP_ENV is "production". Missing files are skipped. Variables already set win.
func LoadDotenv(lookup LookupFunc, files ...string) ([]string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if env, _ := lookup(EnvAppEnv); strings.EqualFold(env, "production") {
		return nil, nil
	}
	if len(files) == 0 {
		files = []string{".env"}
	}

	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, fmt.Errorf("failed to stat env file %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
