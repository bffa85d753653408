package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-contact-backend/internal/delivery/http/middleware"
	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/sanitize"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth
// required). throttle runs before the body is parsed.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, throttle gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", throttle, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. Accepts JSON or form-encoded bodies. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.SubmissionInput  true  "Contact Form Data"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	in := parseSubmission(c)

	res := h.contactUC.Submit(c.Request.Context(), middleware.SessionID(c), in)

	switch res.Status {
	case domain.SubmitSpamRejected:
		c.Error(apperror.Forbidden("Spam detected."))
	case domain.SubmitInvalid:
		response.FieldErrors(c, res.FieldErrors)
	case domain.SubmitStoreFailed:
		c.Error(apperror.Internal("Error saving your message. Please try again later.", res.Err))
	case domain.SubmitNotifyFailed:
		c.Error(apperror.Internal(fmt.Sprintf("Mailer Error: %v", res.Err), res.Err))
	default:
		response.Message(c, http.StatusOK, "Your message has been sent successfully.")
	}
}

// parseSubmission prefers posted form fields and falls back to a JSON
// object; a body that parses as neither yields empty fields rather than
// an error. Every value is sanitized here, before anything downstream
// can see it.
func parseSubmission(c *gin.Context) domain.SubmissionInput {
	fields := make(map[string]string)

	// ParseMultipartForm also populates PostForm for urlencoded bodies
	_ = c.Request.ParseMultipartForm(1 << 20)
	if len(c.Request.PostForm) > 0 {
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				fields[k] = sanitize.String(vs[0])
			}
		}
	} else if body, err := io.ReadAll(c.Request.Body); err == nil {
		var raw map[string]any
		if json.Unmarshal(body, &raw) == nil {
			for k, v := range sanitize.Map(raw) {
				switch t := v.(type) {
				case string:
					fields[k] = t
				case float64:
					fields[k] = strconv.FormatFloat(t, 'f', -1, 64)
				case bool:
					fields[k] = strconv.FormatBool(t)
				}
			}
		}
	}

	return domain.SubmissionInput{
		FullName:    fields["fullName"],
		Email:       fields["email"],
		Phone:       fields["phone"],
		EnquiryType: fields["enquiryType"],
		Message:     fields["message"],
		BotField:    fields["botField"],
	}
}
