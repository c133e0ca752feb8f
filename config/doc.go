/*
Package config loads the xvizreplay configuration.

Values are resolved in order: built-in defaults, an optional YAML file, an
optional .env file in the working directory, then environment variables:

	XVIZ_LOG_LEVEL          log.level
	XVIZ_LOG_FORMAT         log.format
	XVIZ_EXPORT_TABLE       export.table
	AWS_REGION              export.region
	AWS_ACCESS_KEY          export.accessKey
	AWS_SECRET_KEY          export.secretKey
	XVIZ_DDB_ENDPOINT       export.endpoint
	XVIZ_METRICS_NAMESPACE  metrics.namespace
*/
package config
