package minecraft

import "github.com/dchest/uniuri"

// LaunchAuthData is the data of a logged in player that is passed to the game
type LaunchAuthData interface {
	// GetAccessToken returns the access token (strictly required)
	GetAccessToken() string
	// GetUUID returns the users UUID (strictly required)
	GetUUID() string
	// GetPlayerName returns the users player name (the one that also appears in game)
	GetPlayerName() string
	// GetUserType returns the users user type (legacy, mojang or msa).
	// "legacy" is the old minecraft account type
	// "msa" is the microsoft account type
	GetUserType() string
	// GetXUID returns the users XUID (only for xbox live accounts – user type "msa")
	GetXUID() string
}

var hexChars = []byte("0123456789abcdef")

// NewToken returns a random 32 character hex string usable as offline uuid or access token
func NewToken() string {
	return uniuri.NewLenChars(32, hexChars)
}

// OfflineUser is a player that is not authenticated against any account service
type OfflineUser struct {
	Name        string
	UUID        string
	AccessToken string
}

var _ LaunchAuthData = (*OfflineUser)(nil)

// NewOfflineUser returns an offline user with random uuid and access token
func NewOfflineUser(name string) *OfflineUser {
	return &OfflineUser{Name: name, UUID: NewToken(), AccessToken: NewToken()}
}

func (o *OfflineUser) GetAccessToken() string { return o.AccessToken }
func (o *OfflineUser) GetUUID() string        { return o.UUID }
func (o *OfflineUser) GetPlayerName() string  { return o.Name }
func (o *OfflineUser) GetUserType() string    { return "legacy" }
func (o *OfflineUser) GetXUID() string        { return "" }
