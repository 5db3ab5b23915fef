package screen

import (
	"time"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/certificates"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/practice"
	"github.com/abhisek/examportal/internal/recorder"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/user"
)

// Deps carries the services screens are built from. Nil repositories are
// allowed; screens that need one degrade to an empty state.
type Deps struct {
	Catalog      *catalog.Catalog
	Recorder     *recorder.Recorder
	Practice     *practice.Builder
	Certificates *certificates.Service
	T            *i18n.Translator

	Users    store.UserRepo
	History  store.HistoryRepo
	Progress store.ProgressRepo

	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

// Clock returns d.Now or time.Now.
func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Translator returns d.T or English.
func (d *Deps) Translator() *i18n.Translator {
	if d.T != nil {
		return d.T
	}
	return i18n.English()
}

// Session is the signed-in user together with the dependencies.
type Session struct {
	*Deps
	User user.User
}

// UserChangedMsg announces the signed-in user to the app shell so the
// header can show it. A zero user means signed out.
type UserChangedMsg struct {
	User user.User
	XP   int
}
