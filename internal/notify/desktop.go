package notify

import (
	"context"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/ultradian/internal/phase"
)

// Desktop shows a system notification.
type Desktop struct {
	// Icon is the path to the notification icon. It is looked up in the
	// XDG data directories when empty.
	Icon string
	// Layout formats clock times in the message.
	Layout string
}

// NewDesktop returns a desktop notifier using the icon shipped under
// appDir in the XDG data directories, if any.
func NewDesktop(appDir, layout string) *Desktop {
	// empty if the icon is not installed
	icon, _ := xdg.SearchDataFile(filepath.Join(appDir, "icon.png"))

	return &Desktop{
		Icon:   icon,
		Layout: layout,
	}
}

func (d *Desktop) Notify(_ context.Context, s phase.State) error {
	title, msg := Message(s, d.Layout)

	return beeep.Notify(title, msg, d.Icon)
}
