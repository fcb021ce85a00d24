package driver_test

import (
	"testing"

	"yumexpress/internal/core/domain/model/driver"
	"yumexpress/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	t.Run("should create available driver with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriver(id, "Juma Hassan", "+255712345678", "juma@example.com")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Juma Hassan", d.Name())
		assert.Equal(t, "+255712345678", d.Phone())
		assert.Equal(t, "juma@example.com", d.Email())
		assert.True(t, d.IsAvailable())
		assert.Nil(t, d.Location())
	})

	t.Run("should allow empty email", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "")

		require.NoError(t, err)
		assert.Empty(t, d.Email())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "", "+255712345678", "")

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
	})

	t.Run("should fail with empty phone", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "", "")

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, driver.ErrPhoneIsRequired)
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		d, err := driver.NewDriver(invalidID, "Juma Hassan", "+255712345678", "")

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("should restore busy driver with location", func(t *testing.T) {
		id := kernel.NewUUID()
		location, err := kernel.NewGeoPoint(-6.8000, 39.2500)
		require.NoError(t, err)

		d, err := driver.RestoreDriver(id, "Juma Hassan", "+255712345678", "", false, &location)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.False(t, d.IsAvailable())
		require.NotNil(t, d.Location())
		equal, err := d.Location().IsEqual(location)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should restore driver without location", func(t *testing.T) {
		d, err := driver.RestoreDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "", true, nil)

		require.NoError(t, err)
		assert.Nil(t, d.Location())
	})
}

func TestDriver_Validate(t *testing.T) {
	t.Run("should reject zero value driver", func(t *testing.T) {
		var d driver.Driver

		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})

	t.Run("should reject nil driver", func(t *testing.T) {
		var d *driver.Driver

		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestDriver_Availability(t *testing.T) {
	t.Run("should toggle availability", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "")
		require.NoError(t, err)

		d.SetBusy()
		assert.False(t, d.IsAvailable())

		d.SetAvailable()
		assert.True(t, d.IsAvailable())
	})
}

func TestDriver_UpdateLocation(t *testing.T) {
	t.Run("should record reported position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "")
		require.NoError(t, err)
		location, err := kernel.NewGeoPoint(-6.8000, 39.2500)
		require.NoError(t, err)

		err = d.UpdateLocation(location)

		require.NoError(t, err)
		require.NotNil(t, d.Location())
	})

	t.Run("should reject invalid position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "")
		require.NoError(t, err)
		var invalid kernel.GeoPoint

		err = d.UpdateLocation(invalid)

		require.Error(t, err)
		assert.Nil(t, d.Location())
	})
}

func TestDriver_IsEqual(t *testing.T) {
	t.Run("should compare by identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		d1, _ := driver.NewDriver(id, "Juma Hassan", "+255712345678", "")
		d2, _ := driver.NewDriver(id, "Asha Omari", "+255787654321", "")
		d3, _ := driver.NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "")

		assert.True(t, d1.IsEqual(d2))
		assert.False(t, d1.IsEqual(d3))
		assert.False(t, d1.IsEqual(nil))
	})
}
