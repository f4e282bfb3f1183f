package avs

// FocusState is the channel-focus level granted by the focus manager.
type FocusState string

const (
	// FocusNone means the channel is not ours; any activity must stop.
	FocusNone FocusState = "NONE"
	// FocusBackground grants the channel at background priority.
	FocusBackground FocusState = "BACKGROUND"
	// FocusForeground grants exclusive foreground use of the channel.
	FocusForeground FocusState = "FOREGROUND"
)

func (f FocusState) String() string {
	return string(f)
}

// ChannelDialog is the audio channel used for spoken dialog with the user.
const ChannelDialog = "Dialog"
