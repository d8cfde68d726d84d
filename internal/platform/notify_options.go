package platform

// AppName is reported to notification services.
const AppName = "framer"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown next to the message when the
	// platform supports it. The exported picture is used after a save.
	IconPath string
	// Timeout in milliseconds. Zero selects the platform default.
	Timeout int32
}
