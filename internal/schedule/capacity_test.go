package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

func TestWindowSeconds(t *testing.T) {
	assert.Equal(t, 60, WindowSeconds(tod(t, "08:00"), tod(t, "08:01")))
	assert.Equal(t, 8*3600, WindowSeconds(tod(t, "09:00"), tod(t, "17:00")))
	assert.Equal(t, 0, WindowSeconds(tod(t, "10:00"), tod(t, "10:00")))
	// overnight: 22:00 -> 02:00 is four hours
	assert.Equal(t, 4*3600, WindowSeconds(tod(t, "22:00"), tod(t, "02:00")))
	// the widest wrap: 00:01 -> 00:00 next day
	assert.Equal(t, (minutesPerDay-1)*60, WindowSeconds(tod(t, "00:01"), tod(t, "00:00")))
}

func TestPlaylistSeconds(t *testing.T) {
	items := []model.PlaylistItem{
		{Duration: 30},
		{Duration: 20},
		{Duration: 15},
	}
	assert.Equal(t, 65, PlaylistSeconds(items))
	assert.Equal(t, 0, PlaylistSeconds(nil))
}

func TestCheckCapacity(t *testing.T) {
	// a 65 second playlist does not fit a one minute window
	err := CheckCapacity(tod(t, "08:00"), tod(t, "08:01"), 65)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "short by 5s")

	// but fits a two minute window
	assert.NoError(t, CheckCapacity(tod(t, "08:00"), tod(t, "08:02"), 65))

	// an exact fit is allowed
	assert.NoError(t, CheckCapacity(tod(t, "08:00"), tod(t, "08:01"), 60))

	// empty playlists always fit, even a zero-length window
	assert.NoError(t, CheckCapacity(tod(t, "10:00"), tod(t, "10:00"), 0))
	assert.Error(t, CheckCapacity(tod(t, "10:00"), tod(t, "10:00"), 1))
}
