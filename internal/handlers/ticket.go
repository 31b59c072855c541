package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	"github.com/yukikurage/ticket-tracker/internal/constants"
	"github.com/yukikurage/ticket-tracker/internal/dto"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/middleware"
	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/services"
	"github.com/yukikurage/ticket-tracker/internal/utils"
	"github.com/yukikurage/ticket-tracker/internal/web"
)

const triageTimeout = 5 * time.Second

type TicketHandler struct {
	ticketService *services.TicketService
	advisor       *services.TriageAdvisor
	logger        *zap.Logger
}

// NewTicketHandler creates a TicketHandler. advisor may be nil, in which case
// the edit form shows no triage suggestion.
func NewTicketHandler(ticketService *services.TicketService, advisor *services.TriageAdvisor, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		advisor:       advisor,
		logger:        logger,
	}
}

type ticketForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Budget      string `form:"budget"`
	Priority    string `form:"priority"`
	Status      string `form:"status"`
}

// List renders every ticket, newest first. Anyone may view it.
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.ticketService.ListTickets(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	web.Render(c, "index.html", gin.H{
		"Title":   "Tickets",
		"Tickets": tickets,
	})
}

// ListJSON returns one page of tickets as JSON
func (h *TicketHandler) ListJSON(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tickets, total, err := h.ticketService.ListTicketsPage(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tickets",
			"code":  apierrors.CodeOf(err),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketListResponse(tickets, params, total))
}

// AddForm renders the new ticket form
func (h *TicketHandler) AddForm(c *gin.Context) {
	web.Render(c, "add_ticket.html", gin.H{
		"Title":      "New ticket",
		"Categories": models.Categories,
		"Priorities": models.Priorities,
	})
}

// Create stores a ticket owned by the caller. Status and owner are never
// taken from the form.
func (h *TicketHandler) Create(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		web.Fail(c, apierrors.ErrUnauthorized, "/login")
		return
	}

	var form ticketForm
	if err := c.ShouldBind(&form); err != nil {
		web.Fail(c, invalidForm(err), "/add")
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), identity.UserID, services.CreateTicketInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Budget:      form.Budget,
		Priority:    form.Priority,
	})
	if err != nil {
		web.Fail(c, err, "/add")
		return
	}

	h.logger.Info("ticket created",
		zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
		zap.Uint64("ticket_id", ticket.ID),
		zap.Uint64("user_id", identity.UserID),
	)
	web.AddNotice(c, apierrors.SeveritySuccess, "Ticket created.")
	web.Redirect(c, "/")
}

// EditForm renders the prefilled update form
func (h *TicketHandler) EditForm(c *gin.Context) {
	id, _ := middleware.TicketID(c)

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		web.Fail(c, err, "/")
		return
	}

	data := gin.H{
		"Title":      fmt.Sprintf("Edit ticket #%d", ticket.ID),
		"Ticket":     ticket,
		"Categories": models.Categories,
		"Priorities": models.Priorities,
		"Statuses":   models.Statuses,
	}
	if suggestion := h.suggest(c, ticket); suggestion != nil {
		data["Suggestion"] = suggestion
	}

	web.Render(c, "update_ticket.html", data)
}

// Update overwrites every editable field, status included
func (h *TicketHandler) Update(c *gin.Context) {
	id, _ := middleware.TicketID(c)
	editPath := fmt.Sprintf("/update/%d", id)

	var form ticketForm
	if err := c.ShouldBind(&form); err != nil {
		web.Fail(c, invalidForm(err), editPath)
		return
	}

	_, err := h.ticketService.UpdateTicket(c.Request.Context(), id, services.UpdateTicketInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Budget:      form.Budget,
		Priority:    form.Priority,
		Status:      form.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			web.Fail(c, err, "/")
			return
		}
		web.Fail(c, err, editPath)
		return
	}

	web.AddNotice(c, apierrors.SeveritySuccess, "Ticket updated.")
	web.Redirect(c, "/")
}

// Delete removes a ticket. A ticket that is already gone is not an error.
func (h *TicketHandler) Delete(c *gin.Context) {
	id, _ := middleware.TicketID(c)

	if err := h.ticketService.DeleteTicket(c.Request.Context(), id); err != nil {
		web.Fail(c, err, "/")
		return
	}

	web.AddNotice(c, apierrors.SeverityInfo, "Ticket deleted.")
	web.Redirect(c, "/")
}

func (h *TicketHandler) suggest(c *gin.Context, ticket *models.Ticket) *services.TriageSuggestion {
	if h.advisor == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), triageTimeout)
	defer cancel()

	suggestion, err := h.advisor.Suggest(ctx, ticket.Title, ticket.Description)
	if err != nil {
		h.logger.Warn("triage suggestion failed",
			zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
			zap.Uint64("ticket_id", ticket.ID),
			zap.Error(err),
		)
		return nil
	}
	if suggestion.Category == "" && suggestion.Priority == "" {
		return nil
	}
	return suggestion
}
