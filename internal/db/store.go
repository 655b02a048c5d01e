// exposes a Store interface that is passed to API calls
package db

import "github.com/Nixie-Tech-LLC/triton/internal/model"

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// screen functions
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByDeviceID(deviceID string) (model.Screen, error)
	IsScreenPairedByDeviceID(deviceID string) (bool, error)
	ListScreens() ([]model.Screen, error)
	CreateScreen(name string, location, timezone *string, createdBy int) (model.Screen, error)
	UpdateScreen(id int, name, location, timezone *string) error
	PairScreen(id int, deviceID string) error
	SetScreenDimensions(id int, width, height *int) error
	DeleteScreen(id int) error

	// playlist functions
	CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists() ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string) error
	DeletePlaylist(id int) error
	ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error)
	AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error)
	UpdatePlaylistItem(itemID int, position, duration *int) error
	RemovePlaylistItem(itemID int) error
	ReorderPlaylistItems(playlistID int, itemIDs []int) error

	// content functions
	CreateContent(name, contentType, url string, defaultDuration, createdBy int) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent() ([]model.Content, error)
	UpdateContent(id int, name, contentType, url *string, defaultDuration *int) error
	DeleteContent(id int) error

	// schedule functions
	ListSchedules(ownerID int) ([]model.Schedule, error)
	ListSchedulesByScreen(screenID int) ([]model.Schedule, error)
	ListSchedulesBySeries(seriesID string) ([]model.Schedule, error)
	ListSchedulesByPlaylist(playlistID int) ([]model.Schedule, error)
	CountSchedulesByPlaylist(playlistID int) (int, error)
	GetScheduleByID(id int) (model.Schedule, error)
	CreateScheduleSeries(rows []model.Schedule) ([]model.Schedule, error)
	UpdateSchedule(id int, fields model.ScheduleUpdate) (model.Schedule, error)
	UpdateScheduleSeries(seriesID string, fields model.ScheduleUpdate) ([]model.Schedule, error)
	DeleteSchedule(id int) (bool, error)
	DeleteScheduleSeries(seriesID string) (int, error)

	// system settings
	GetSystemSetting(key string) (string, error)
	SetSystemSetting(key, value string) error
}

type pgStore struct{}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)         { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) GetScreenByID(id int) (model.Screen, error) { return GetScreenByID(id) }
func (s *pgStore) GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	return GetScreenByDeviceID(deviceID)
}
func (s *pgStore) IsScreenPairedByDeviceID(deviceID string) (bool, error) {
	return IsScreenPairedByDeviceID(deviceID)
}
func (s *pgStore) ListScreens() ([]model.Screen, error) { return ListScreens() }
func (s *pgStore) CreateScreen(name string, location, timezone *string, createdBy int) (model.Screen, error) {
	return CreateScreen(name, location, timezone, createdBy)
}
func (s *pgStore) UpdateScreen(id int, name, location, timezone *string) error {
	return UpdateScreen(id, name, location, timezone)
}
func (s *pgStore) PairScreen(id int, deviceID string) error { return PairScreen(id, deviceID) }
func (s *pgStore) SetScreenDimensions(id int, width, height *int) error {
	return SetScreenDimensions(id, width, height)
}
func (s *pgStore) DeleteScreen(id int) error { return DeleteScreen(id) }

func (s *pgStore) CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	return CreatePlaylist(name, description, createdBy)
}
func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) { return GetPlaylistByID(id) }
func (s *pgStore) ListPlaylists() ([]model.Playlist, error)       { return ListPlaylists() }
func (s *pgStore) UpdatePlaylist(id int, name, description *string) error {
	return UpdatePlaylist(id, name, description)
}
func (s *pgStore) DeletePlaylist(id int) error { return DeletePlaylist(id) }
func (s *pgStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	return ListPlaylistItems(playlistID)
}
func (s *pgStore) AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error) {
	return AddItemToPlaylist(playlistID, contentID, position, duration)
}
func (s *pgStore) UpdatePlaylistItem(itemID int, position, duration *int) error {
	return UpdatePlaylistItem(itemID, position, duration)
}
func (s *pgStore) RemovePlaylistItem(itemID int) error { return RemovePlaylistItem(itemID) }
func (s *pgStore) ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	return ReorderPlaylistItems(playlistID, itemIDs)
}

func (s *pgStore) CreateContent(name, contentType, url string, defaultDuration, createdBy int) (model.Content, error) {
	return CreateContent(name, contentType, url, defaultDuration, createdBy)
}
func (s *pgStore) GetContentByID(id int) (model.Content, error) { return GetContentByID(id) }
func (s *pgStore) ListContent() ([]model.Content, error)        { return ListContent() }
func (s *pgStore) UpdateContent(id int, name, contentType, url *string, defaultDuration *int) error {
	return UpdateContent(id, name, contentType, url, defaultDuration)
}
func (s *pgStore) DeleteContent(id int) error { return DeleteContent(id) }

func (s *pgStore) ListSchedules(ownerID int) ([]model.Schedule, error) { return ListSchedules(ownerID) }
func (s *pgStore) ListSchedulesByScreen(screenID int) ([]model.Schedule, error) {
	return ListSchedulesByScreen(screenID)
}
func (s *pgStore) ListSchedulesBySeries(seriesID string) ([]model.Schedule, error) {
	return ListSchedulesBySeries(seriesID)
}
func (s *pgStore) ListSchedulesByPlaylist(playlistID int) ([]model.Schedule, error) {
	return ListSchedulesByPlaylist(playlistID)
}
func (s *pgStore) CountSchedulesByPlaylist(playlistID int) (int, error) {
	return CountSchedulesByPlaylist(playlistID)
}
func (s *pgStore) GetScheduleByID(id int) (model.Schedule, error) { return GetScheduleByID(id) }
func (s *pgStore) CreateScheduleSeries(rows []model.Schedule) ([]model.Schedule, error) {
	return CreateScheduleSeries(rows)
}
func (s *pgStore) UpdateSchedule(id int, fields model.ScheduleUpdate) (model.Schedule, error) {
	return UpdateSchedule(id, fields)
}
func (s *pgStore) UpdateScheduleSeries(seriesID string, fields model.ScheduleUpdate) ([]model.Schedule, error) {
	return UpdateScheduleSeries(seriesID, fields)
}
func (s *pgStore) DeleteSchedule(id int) (bool, error) { return DeleteSchedule(id) }
func (s *pgStore) DeleteScheduleSeries(seriesID string) (int, error) {
	return DeleteScheduleSeries(seriesID)
}

func (s *pgStore) GetSystemSetting(key string) (string, error) { return GetSystemSetting(key) }
func (s *pgStore) SetSystemSetting(key, value string) error    { return SetSystemSetting(key, value) }
