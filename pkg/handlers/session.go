package handlers

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kmorling/sundial/pkg/data"
	"github.com/kmorling/sundial/pkg/sunevents"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"
	"gorm.io/gorm"
)

const (
	sessionName = "session"
	sessionUser = "username"
)

var (
	store = sessions.NewCookieStore(getSessionKey(), getEncryptionKey())

	dbOnce sync.Once
	db     *gorm.DB
)

// database opens the postgres connection on first use. Handlers that never
// touch user state never pay for (or require) the connection.
func database() *gorm.DB {
	dbOnce.Do(func() {
		db = data.PostgresFromEnvOrDie()
	})
	return db
}

func getSessionKey() []byte {
	return deriveKey("SESSION_KEY", 64)
}

func getEncryptionKey() []byte {
	return deriveKey("SESSION_ENCRYPTION_KEY", 32)
}

// deriveKey stretches the named env var into a fixed-length key. An unset
// var falls back to a random key, which invalidates cookies on restart but
// keeps the server usable.
func deriveKey(envName string, length int) []byte {
	secret := os.Getenv(envName)
	if secret == "" {
		log.Printf("%s not set, sessions will not survive a restart", envName)
		return securecookie.GenerateRandomKey(length)
	}
	return pbkdf2.Key([]byte(secret), []byte("sundial"), 4096, length, sha256.New)
}

// PlaceRequest is the JSON body for POST /api/v1/place.
type PlaceRequest struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"latitude"`
	Long     float64 `json:"longitude"`
	Timezone string  `json:"timezone"`
}

func makeServePlace() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httpError(w, http.StatusMethodNotAllowed, fmt.Errorf("%s not allowed", r.Method))
			return
		}

		var req PlaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, fmt.Errorf("bad place: %v", err))
			return
		}
		if req.Timezone != "" {
			if _, err := time.LoadLocation(req.Timezone); err != nil {
				httpError(w, http.StatusBadRequest, fmt.Errorf("unknown timezone %q", req.Timezone))
				return
			}
		}

		session, err := store.Get(r, sessionName)
		if err != nil {
			httpError(w, http.StatusBadRequest, fmt.Errorf("bad session: %v", err))
			return
		}
		name, ok := session.Values[sessionUser].(string)
		if !ok || name == "" {
			name = newUsername()
			session.Values[sessionUser] = name
		}

		var user data.User
		database().Where(data.User{Name: name}).FirstOrCreate(&user)
		user.PlaceName = req.Name
		user.Lat = &req.Lat
		user.Lon = &req.Long
		user.Timezone = req.Timezone
		user.LastSeen = time.Now()
		if err := database().Save(&user).Error; err != nil {
			httpError(w, http.StatusInternalServerError, fmt.Errorf("could not save place: %v", err))
			return
		}

		if err := session.Save(r, w); err != nil {
			log.Printf("Failed to save session: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "saved %q for %s\n", req.Name, name)
	})
}

// savedPlace looks up the session user's stored place, if any.
func savedPlace(r *http.Request) (sunevents.Place, bool) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return sunevents.Place{}, false
	}
	name, ok := session.Values[sessionUser].(string)
	if !ok || name == "" {
		return sunevents.Place{}, false
	}

	var user data.User
	if err := database().Where(data.User{Name: name}).First(&user).Error; err != nil {
		return sunevents.Place{}, false
	}
	if user.Lat == nil || user.Lon == nil {
		return sunevents.Place{}, false
	}

	place := sunevents.Place{
		Name: user.PlaceName,
		Lat:  *user.Lat,
		Long: *user.Lon,
	}
	if user.Timezone != "" {
		if loc, err := time.LoadLocation(user.Timezone); err == nil {
			place.Location = loc
		}
	}
	return place, true
}

func newUsername() string {
	return fmt.Sprintf("user-%x", securecookie.GenerateRandomKey(8))
}
