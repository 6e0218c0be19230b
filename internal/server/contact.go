package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/dcsystems/dcsite/internal/contact"
	"github.com/sirupsen/logrus"
)

// ContactPath receives contact form posts
const ContactPath = "/api/contact"

const maxContactBody = 64 << 10

// handleContact validates one submission and answers with the toast to
// show. Nothing is stored; only the submission id is logged.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, newAPIError(ErrCodeRateLimit, "Too many messages. Please try again in a moment.", nil))
		return
	}

	sub, err := decodeSubmission(w, r)
	if err != nil {
		s.log.WithError(err).Debug("Malformed contact submission")
		writeError(w, newAPIError(ErrCodeMalformed, "The request body could not be read.", err))
		return
	}

	res := s.validator.Check(sub)
	entry := s.log.WithFields(logrus.Fields{
		"submission_id": res.ID,
		"request_id":    requestID(r.Context()),
	})
	if !res.Accepted {
		rejected := newAPIError(ErrCodeValidation, res.Toast.Description, nil)
		entry.WithFields(logrus.Fields{"code": rejected.Code, "reason": res.Toast.Title}).Info("Contact submission rejected")
		// the body stays the toast result so the page can show it
		writeJSON(w, rejected.status(), res)
		return
	}
	entry.Info("Contact submission accepted")
	writeJSON(w, http.StatusOK, res)
}

// decodeSubmission reads a JSON body, or a url-encoded or multipart form
func decodeSubmission(w http.ResponseWriter, r *http.Request) (contact.Submission, error) {
	var sub contact.Submission
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&sub); err != nil {
			if errors.Is(err, io.EOF) {
				return sub, errors.New("empty body")
			}
			return sub, err
		}
		return sub, nil
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxContactBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return sub, err
		}
		sub = contact.Submission{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Company: r.FormValue("company"),
			Phone:   r.FormValue("phone"),
			Subject: r.FormValue("subject"),
			Message: r.FormValue("message"),
		}
		return sub, nil
	default:
		return sub, errors.New("unsupported content type " + mediaType)
	}
}
