package util

func GetAppName() string {
	return "AutoRFP"
}
