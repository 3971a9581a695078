package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/blob"
	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/ratelimit"
	"github.com/cmms-platform/cmms-service/internal/service"
)

// PublicPortalHandler serves the unauthenticated /p/ surface: form
// configuration, submission intake and status lookup by code.
type PublicPortalHandler struct {
	portals     *service.PortalService
	submissions service.SubmissionServicer
	gateway     *blob.Gateway
	limiter     *ratelimit.PortalLimiter
}

func NewPublicPortalHandler(portals *service.PortalService, submissions service.SubmissionServicer, gateway *blob.Gateway, limiter *ratelimit.PortalLimiter) *PublicPortalHandler {
	return &PublicPortalHandler{portals: portals, submissions: submissions, gateway: gateway, limiter: limiter}
}

// GetForm returns the portal's public form definition. ?qr=1 counts the hit
// as a QR scan.
func (h *PublicPortalHandler) GetForm(c *gin.Context) {
	p, err := h.portals.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !p.Active {
		respondError(c, errs.ErrPortalInactive)
		return
	}
	if c.Query("qr") == "1" {
		h.portals.RecordQRScan(p.ID)
	}
	c.JSON(http.StatusOK, gin.H{
		"name":            p.Name,
		"slug":            p.Slug,
		"type":            p.Type,
		"description":     p.Description,
		"allow_anonymous": p.AllowAnonymous,
		"fields":          p.Fields.Data(),
		"file_policy":     p.FilePolicy.Data(),
	})
}

// Submit принимает публичную заявку: multipart с полем data (JSON) и
// файлами, либо чистый JSON без вложений.
func (h *PublicPortalHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.portals.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !p.Active {
		respondError(c, errs.ErrPortalInactive)
		return
	}
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(ctx, p)
		if err != nil {
			respondError(c, err)
			return
		}
		if !allowed {
			respondError(c, errs.ErrRateLimited)
			return
		}
	}

	in := service.SubmitInput{SubmitterIP: c.ClientIP()}

	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		files, err := h.collectFiles(c, p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := json.Unmarshal([]byte(c.PostForm("data")), &in.Data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "data must be a JSON object"})
			return
		}
		in.SubmitterName = c.PostForm("submitter_name")
		in.SubmitterEmail = c.PostForm("submitter_email")
		in.SubmitterPhone = c.PostForm("submitter_phone")
		in.Files = files
	} else {
		var body struct {
			SubmitterName  string                 `json:"submitter_name"`
			SubmitterEmail string                 `json:"submitter_email"`
			SubmitterPhone string                 `json:"submitter_phone"`
			Data           map[string]interface{} `json:"data"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		in.SubmitterName = body.SubmitterName
		in.SubmitterEmail = body.SubmitterEmail
		in.SubmitterPhone = body.SubmitterPhone
		in.Data = body.Data
	}
	if in.Data == nil {
		in.Data = map[string]interface{}{}
	}

	sub, err := h.submissions.Submit(ctx, p, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":   sub.Code,
		"status": sub.Status,
	})
}

// Status is the public tracking endpoint: code in, submission without
// internal communications out.
func (h *PublicPortalHandler) Status(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
		return
	}
	sub, err := h.submissions.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// collectFiles reads multipart attachments, enforces the portal's file
// policy on top of the gateway's global limits, and uploads them.
func (h *PublicPortalHandler) collectFiles(c *gin.Context, p *model.Portal) ([]model.PortalSubmissionFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	policy := p.FilePolicy.Data()

	var out []model.PortalSubmissionFile
	total := 0
	for field, headers := range form.File {
		for _, fh := range headers {
			total++
			if policy.MaxFiles > 0 && total > policy.MaxFiles {
				return nil, fmt.Errorf("too many files: this portal accepts at most %d", policy.MaxFiles)
			}
			if policy.MaxSizeBytes > 0 && fh.Size > policy.MaxSizeBytes {
				return nil, fmt.Errorf("file %s exceeds the portal limit of %d bytes", fh.Filename, policy.MaxSizeBytes)
			}
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			ct := fh.Header.Get("Content-Type")
			if len(policy.AllowedTypes) > 0 && !typeAllowed(policy.AllowedTypes, ct) {
				return nil, fmt.Errorf("file type %s is not allowed on this portal", ct)
			}
			uploaded, err := h.gateway.Upload(c.Request.Context(), blob.Input{
				OriginalName: fh.Filename,
				Data:         data,
				ContentType:  ct,
			}, blob.Options{Folder: "portal-submissions/" + p.Slug})
			if err != nil {
				return nil, err
			}
			out = append(out, model.PortalSubmissionFile{
				FieldName:    field,
				Filename:     uploaded.Filename,
				OriginalName: uploaded.OriginalName,
				URL:          uploaded.URL,
				StoragePath:  uploaded.Pathname,
				Size:         uploaded.Size,
				MimeType:     uploaded.MimeType,
			})
		}
	}
	return out, nil
}

func typeAllowed(allowed []string, ct string) bool {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, a := range allowed {
		if a == ct {
			return true
		}
		// "image/*" style wildcards.
		if strings.HasSuffix(a, "/*") && strings.HasPrefix(ct, strings.TrimSuffix(a, "*")) {
			return true
		}
	}
	return false
}
