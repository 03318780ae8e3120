package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/phrazzld/omnistudy/internal/api/shared"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/platform/pdftext"
	"github.com/phrazzld/omnistudy/internal/service"
)

// MaxDocumentBytes bounds uploaded document files.
const MaxDocumentBytes = 5 << 20

// documentFormField is the multipart part carrying an uploaded document.
const documentFormField = "file"

var allowedDocumentExtensions = map[string]bool{
	".txt": true,
	".pdf": true,
}

// PDFTextReader extracts the text layer of a PDF document.
// pdftext.Extractor implements it.
type PDFTextReader interface {
	Text(ctx context.Context, data []byte) (string, error)
}

// StudyHandler exposes the study features over HTTP.
type StudyHandler struct {
	studyService service.StudyService
	pdfReader    PDFTextReader
}

// NewStudyHandler creates a new StudyHandler. A nil pdfReader rejects PDF uploads.
func NewStudyHandler(studyService service.StudyService, pdfReader PDFTextReader) *StudyHandler {
	return &StudyHandler{studyService: studyService, pdfReader: pdfReader}
}

// Explain handles POST /study/explain.
func (h *StudyHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	img, err := decodeOptionalImage(req.Image)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.studyService.Explain(r.Context(), service.ExplainInput{
		Concept:  req.Concept,
		Socratic: req.Socratic,
		Image:    img,
	})
	h.respondText(w, r, result, err)
}

// Summarize handles POST /study/summarize.
func (h *StudyHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.Summarize(r.Context(), service.SummarizeInput{
		Text:   req.Text,
		Length: req.Length,
	})
	h.respondText(w, r, result, err)
}

// Quiz handles POST /study/quiz.
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.Quiz(r.Context(), service.QuizInput{
		Topic:      req.Topic,
		Count:      req.Count,
		Difficulty: req.Difficulty,
	})
	h.respondRecords(w, r, result, err)
}

// Flashcards handles POST /study/flashcards.
func (h *StudyHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.Flashcards(r.Context(), service.FlashcardsInput{
		Topic: req.Topic,
		Count: req.Count,
	})
	h.respondRecords(w, r, result, err)
}

// AnalyzeDocument handles POST /study/documents/analyze. The document is
// either inline JSON content or a multipart file upload.
func (h *StudyHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeDocumentRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		content, err := h.readUploadedDocument(w, r)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		req.Content = content
		req.Type = domain.AnalysisType(r.FormValue("type"))
		if err := shared.ValidateRequest(&req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.AnalyzeDocument(r.Context(), service.AnalyzeDocumentInput{
		Content: req.Content,
		Type:    req.Type,
	})
	h.respondText(w, r, result, err)
}

// DocumentChat handles POST /study/documents/chat.
func (h *StudyHandler) DocumentChat(w http.ResponseWriter, r *http.Request) {
	var req DocumentChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.DocumentChat(r.Context(), service.DocumentChatInput{
		Content:  req.Content,
		Question: req.Question,
		Socratic: req.Socratic,
	})
	h.respondText(w, r, result, err)
}

// Mnemonic handles POST /study/mnemonics.
func (h *StudyHandler) Mnemonic(w http.ResponseWriter, r *http.Request) {
	var req MnemonicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.Mnemonic(r.Context(), service.MnemonicInput{
		Concept: req.Concept,
		Type:    req.Type,
	})
	h.respondText(w, r, result, err)
}

// Story handles POST /study/stories.
func (h *StudyHandler) Story(w http.ResponseWriter, r *http.Request) {
	var req StoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.Story(r.Context(), service.StoryInput{
		Topic:    req.Topic,
		Style:    req.Style,
		Audience: req.Audience,
	})
	h.respondText(w, r, result, err)
}

// Providers handles GET /providers.
func (h *StudyHandler) Providers(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.studyService.Providers())
}

func (h *StudyHandler) respondText(w http.ResponseWriter, r *http.Request, result *service.TextResult, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate response")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TextResponse{
		Text:     result.Text,
		Provider: result.Provider,
		Model:    result.Model,
	})
}

func (h *StudyHandler) respondRecords(w http.ResponseWriter, r *http.Request, result *service.RecordsResult, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate response")
		return
	}

	resp := RecordsResponse{
		Records:  result.Records,
		Degraded: result.Degraded,
		Provider: result.Provider,
		Model:    result.Model,
	}
	if result.Degraded {
		resp.Raw = result.Raw
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// readUploadedDocument reads the uploaded file part. Text files are decoded
// as UTF-8 with invalid byte sequences dropped; PDFs go through pdfReader.
func (h *StudyHandler) readUploadedDocument(w http.ResponseWriter, r *http.Request) (string, error) {
	// Leave room for the multipart framing and the type field.
	r.Body = http.MaxBytesReader(w, r.Body, MaxDocumentBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxDocumentBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", domain.NewValidationError("file", "must be at most 5 MiB")
		}
		return "", domain.NewValidationError("file", "invalid multipart form")
	}

	file, header, err := r.FormFile(documentFormField)
	if err != nil {
		return "", domain.NewValidationError("file", "is required")
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedDocumentExtensions[ext] {
		return "", domain.NewValidationError("file", "must be a .txt or .pdf document")
	}
	if header.Size > MaxDocumentBytes {
		return "", domain.NewValidationError("file", "must be at most 5 MiB")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxDocumentBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxDocumentBytes {
		return "", domain.NewValidationError("file", "must be at most 5 MiB")
	}

	if ext == ".pdf" {
		return h.readPDF(r.Context(), data)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func (h *StudyHandler) readPDF(ctx context.Context, data []byte) (string, error) {
	if h.pdfReader == nil {
		return "", domain.NewValidationError("file", "PDF documents are not supported")
	}

	text, err := h.pdfReader.Text(ctx, data)
	switch {
	case errors.Is(err, pdftext.ErrUnreadable):
		return "", domain.NewValidationError("file", "is not a readable PDF")
	case errors.Is(err, pdftext.ErrNoText):
		return "", domain.NewValidationError("file", "contains no extractable text")
	case err != nil:
		return "", err
	}
	return text, nil
}
