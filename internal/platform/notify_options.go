package platform

// Urgency mirrors the freedesktop notification urgency levels.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification center. Empty
	// means "Sketchpad".
	AppName string
	// IconPath, when non-empty, points to an image file shown next to the
	// message where the platform supports it.
	IconPath string
	// Urgency is honoured on Linux only.
	Urgency Urgency
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Sketchpad"
	}
	return o.AppName
}
