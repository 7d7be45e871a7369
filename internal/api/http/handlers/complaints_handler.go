package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/service"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// ComplaintsHandler exposes intake and lifecycle endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	feedback   *service.FeedbackService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService, feedback *service.FeedbackService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, feedback: feedback}
}

// Classify handles POST /classify.
func (h *ComplaintsHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	label, err := h.complaints.Classify(c.UserContext(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"category": label}})
}

// Create handles POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateComplaintRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var customerID *int64
	if caller.Role() == domain.RoleCustomer {
		id := caller.User.ID
		customerID = &id
	}
	complaint, err := h.complaints.Create(callerContext(c), req.Text, customerID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// List handles GET /complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	filter, err := parseComplaintQuery(c)
	if err != nil {
		return err
	}
	if !caller.IsStaff() {
		id := caller.User.ID
		filter.CustomerID = &id
	}

	complaints, err := h.complaints.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		resp = append(resp, dto.NewComplaintResponse(&complaints[i]))
	}
	return c.JSON(fiber.Map{
		"data": resp,
		"meta": fiber.Map{
			"page":      parseInt(c.Query("page"), 1),
			"page_size": filter.Limit,
		},
	})
}

// Get handles GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.visibleComplaint(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Update handles PATCH /complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateComplaintRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.complaints.Apply(callerContext(c), id, service.ComplaintUpdate{
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		Category:     req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"complaint": dto.NewComplaintResponse(result.Complaint),
		"notified":  result.Notified,
	}})
}

// Forward handles POST /complaints/:id/forward.
func (h *ComplaintsHandler) Forward(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ForwardRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.complaints.Forward(callerContext(c), id, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"complaint":    dto.NewComplaintResponse(result.Complaint),
		"forwarded_at": result.ForwardedAt,
		"notified":     result.Notified,
	}})
}

// Complete handles POST /complaints/:id/complete.
func (h *ComplaintsHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.complaints.Complete(callerContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"complaint":          dto.NewComplaintResponse(result.Complaint),
		"completed_at":       result.CompletedAt,
		"notified":           result.Notified,
		"feedback_requested": result.FeedbackRequested,
	}})
}

// Escalate handles POST /complaints/:id/escalate.
func (h *ComplaintsHandler) Escalate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.complaints.Escalate(callerContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"complaint":    dto.NewComplaintResponse(result.Complaint),
		"escalated_at": result.EscalatedAt,
		"notified":     result.Notified,
	}})
}

// Delete handles DELETE /complaints/:id.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.complaints.Delete(callerContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListNotes handles GET /complaints/:id/notes.
func (h *ComplaintsHandler) ListNotes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	notes, err := h.complaints.ListNotes(c.UserContext(), id)
	if err != nil {
		return err
	}
	resp := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		resp = append(resp, dto.NewNoteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// AddNote handles POST /complaints/:id/notes.
func (h *ComplaintsHandler) AddNote(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	internal := true
	if req.Internal != nil {
		internal = *req.Internal
	}
	authorID := caller.User.ID
	note, err := h.complaints.AddNote(callerContext(c), id, &authorID, req.Text, internal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNoteResponse(note)})
}

// GetFeedback handles GET /complaints/:id/feedback.
func (h *ComplaintsHandler) GetFeedback(c *fiber.Ctx) error {
	complaint, err := h.visibleComplaint(c)
	if err != nil {
		return err
	}
	fb, err := h.feedback.Get(c.UserContext(), complaint.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackResponse(fb)})
}

// SubmitFeedback handles POST /complaints/:id/feedback.
func (h *ComplaintsHandler) SubmitFeedback(c *fiber.Ctx) error {
	complaint, err := h.visibleComplaint(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	fb, err := h.feedback.Submit(callerContext(c), complaint.ID, req.Rating, req.Comments)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(fb)})
}

// CheckSLA handles POST /sla/check.
func (h *ComplaintsHandler) CheckSLA(c *fiber.Ctx) error {
	result, err := h.complaints.CheckSLA(callerContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"escalated_count": result.EscalatedCount,
		"notified":        result.Notified,
	}})
}

// AssignPriorities handles POST /priorities/assign.
func (h *ComplaintsHandler) AssignPriorities(c *fiber.Ctx) error {
	result, err := h.complaints.AssignPriorities(callerContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated_count": result.UpdatedCount}})
}

// visibleComplaint loads the :id complaint, hiding other customers' complaints as not found.
func (h *ComplaintsHandler) visibleComplaint(c *fiber.Ctx) (*domain.Complaint, error) {
	caller, err := principal(c)
	if err != nil {
		return nil, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	complaint, err := h.complaints.Get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if !caller.CanSeeComplaint(complaint) {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return complaint, nil
}

func parseComplaintQuery(c *fiber.Ctx) (repository.ComplaintFilter, error) {
	filter := repository.ComplaintFilter{}
	for _, raw := range splitList(c.Query("status")) {
		status, ok := domain.ParseComplaintStatus(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = &category
	}
	if raw := c.Query("department_id"); raw != "" {
		deptID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || deptID <= 0 {
			return filter, apperrors.NewValidationError("invalid department_id", map[string]any{"department_id": raw})
		}
		filter.DepartmentID = &deptID
	}
	if raw := c.Query("priority"); raw != "" {
		priority, ok := domain.ParsePriority(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown priority", map[string]any{"priority": raw})
		}
		filter.Priority = &priority
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		filter.SearchTerm = &q
	}
	filter.CreatedFrom = parseTime(c.Query("created_from"))
	filter.CreatedBefore = parseTime(c.Query("created_to"))

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	if pageSize > 100 {
		pageSize = 100
	}
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter, nil
}
