/*
Package config loads the settings of a daily note invocation from the environment.

Required variables, checked in this order:

	NOTION_API_KEY
	DATABASE_ID
	AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY   (hosted or DAILY_NOTE_LOCK_TABLE set)

Only the first missing variable is reported, as a *errors.ConfigurationError.

Optional variables:

	AWS_SESSION_TOKEN       temporary credentials supplied by Lambda
	DAILY_NOTE_LOCK_TABLE   DynamoDB table used to claim a day before creating its note
	NOTION_SCHEMA_FILE      YAML file overriding the Notion property names
	LOG_LEVEL               debug, info, warn or error
	APP_ENV                 "production" disables .env loading

Schema file:

	title_property: Name
	date_property: Date
*/
package config
