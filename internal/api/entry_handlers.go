package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/service"
)

func PostEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.SleepEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSleepEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.CreateEntry(c.Request.Context(), app.EntryRepo(), user, &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func GetEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		entries, err := app.EntryRepo().ListEntries(c.Request.Context(), user.ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch entries")
			return
		}

		HandleSuccess(c, app.Logger(), entries, nil)
	}
}

func PutEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		var body service.SleepEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSleepEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.UpdateEntry(c.Request.Context(), app.EntryRepo(), user, id, &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func DeleteEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		if err := service.DeleteEntry(c.Request.Context(), app.EntryRepo(), user, id); err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete entry")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"deleted": id}, nil)
	}
}
