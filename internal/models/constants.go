package models

const (
	TopicOrderRows = "meal_order_rows"

	OutputFormatConsole  = "console"
	OutputFormatJSON     = "json"
	OutputFormatCSV      = "csv"
	OutputFormatYAML     = "yaml"
	OutputFormatParquet  = "parquet"
	OutputFormatPostgres = "postgres"

	OutputDestinationLocal = "local"
	CloudProviderS3        = "s3"
)

var OutputFormats = []string{
	OutputFormatConsole,
	OutputFormatJSON,
	OutputFormatCSV,
	OutputFormatYAML,
	OutputFormatParquet,
	OutputFormatPostgres,
}
