package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// StacAPIURL returns the catalog endpoint, defaulting to the public Earth
// Search catalog when unset.
func StacAPIURL() string {
	url := os.Getenv("STAC_API_URL")
	if url == "" {
		url = "https://earth-search.aws.element84.com/v1"
	}
	return url
}

func StacCollection() string {
	collection := os.Getenv("STAC_COLLECTION")
	if collection == "" {
		collection = "sentinel-2-l2a"
	}
	return collection
}

func StacClientID() string {
	return os.Getenv("STAC_CLIENT_ID")
}

func StacClientSecret() string {
	return os.Getenv("STAC_CLIENT_SECRET")
}

func StacTokenURL() string {
	return os.Getenv("STAC_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}
func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
