package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Timestamps for command dispatch

	"coffee_bot/internal/coffee"  // Core order/lottery/ledger service
	"coffee_bot/internal/command" // Explicit command registry
	"coffee_bot/internal/domain"  // Domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// slashResponse is the immediate reply to a Slack slash command
type slashResponse struct {
	ResponseType string `json:"response_type"` // "ephemeral" or "in_channel"
	Text         string `json:"text"`          // Message body
}

// SlackCommandHandler receives slash commands and routes them through the
// registry. Users are provisioned lazily on first contact.
func SlackCommandHandler(svc *coffee.Service, registry *command.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.PostForm("user_id")
		userName := c.PostForm("user_name")
		text := strings.TrimSpace(c.PostForm("text"))
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
			return
		}

		user, err := resolveUser(svc, userID, userName)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("User provisioning failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		name, args := text, ""
		if i := strings.Index(text, " "); i > 0 {
			name, args = text[:i], strings.TrimSpace(text[i+1:])
		}

		resp, err := registry.Dispatch(user, name, args, time.Now())
		// Expected business-rule violations go back to the user verbatim
		if coffee.IsUserError(err) {
			c.JSON(http.StatusOK, slashResponse{ResponseType: "ephemeral", Text: err.Error()})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"command": name,
				"error":   err.Error(),
			}).Error("Command failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		// One immediate response per command: channel broadcasts win over
		// the private reply when both are present
		if resp.InChannel != "" {
			c.JSON(http.StatusOK, slashResponse{ResponseType: "in_channel", Text: resp.InChannel})
			return
		}
		c.JSON(http.StatusOK, slashResponse{ResponseType: "ephemeral", Text: resp.Ephemeral})
	}
}

// resolveUser finds the chat user, creating them on first contact and
// backfilling an empty display name from the form payload
func resolveUser(svc *coffee.Service, userID, userName string) (*domain.User, error) {
	user, err := svc.FindUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return svc.CreateUser(userID, firstName(userName), false)
	}
	if user.Name == "" && userName != "" {
		return svc.RenameUser(userID, firstName(userName))
	}
	return user, nil
}

// firstName keeps the leading word of a full display name
func firstName(name string) string {
	if i := strings.Index(name, " "); i > 0 {
		return name[:i]
	}
	return name
}
