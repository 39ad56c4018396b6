package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/clients"
	"backoffice/internal/mailer"
	"backoffice/internal/models"
	"backoffice/internal/orders"
)

type campaignRequest struct {
	Subject          string `json:"subject" binding:"required"`
	Body             string `json:"body" binding:"required"`
	BehaviorCategory string `json:"behaviorCategory"`
	SpendingCategory string `json:"spendingCategory"`
}

// SendCampaign resolves recipients through the categorization engine and
// hands the message to the injected sender.
func SendCampaign(db *mongo.Database, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/campaigns"
		defer handlePanic(c, route)

		var req campaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "subject and body are required")
			return
		}

		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()

		list, err := clients.Categorize(ctx, src, time.Now().UTC())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, clients.ErrCategorize.Error())
			return
		}
		list = clients.Filter(list, strings.TrimSpace(req.BehaviorCategory), strings.TrimSpace(req.SpendingCategory))

		recipients := campaignRecipients(list)
		if len(recipients) == 0 {
			respondValidationError(c, "no recipients match the requested categories")
			return
		}

		if err := sender.Send(ctx, mailer.Message{
			To:      recipients,
			Subject: req.Subject,
			HTML:    req.Body,
		}); err != nil {
			log.Printf("[%s] send failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "could not send campaign")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "recipients": len(recipients)})
	}
}

func campaignRecipients(list []models.ClientCategorization) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, client := range list {
		email := strings.ToLower(strings.TrimSpace(client.Email))
		if email == "" || !strings.Contains(email, "@") {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}
