package interview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hiredeck/hiredeck/internal/email"
	"github.com/hiredeck/hiredeck/internal/server"

	"github.com/microcosm-cc/bluemonday"
)

// statusNudger moves an application along when an interview gets scheduled.
// The nudge is a courtesy, never a hard dependency of the interview itself.
type statusNudger interface {
	UpdateStatus(applicationID int, newStatus, notes string) error
}

func ListInterviewsHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := strconv.Atoi(r.URL.Query().Get("job_application_id"))
		if err != nil {
			svr.JSON(w, http.StatusBadRequest, "job_application_id is required")
			return
		}
		interviews, err := repo.ListByApplication(applicationID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to list interviews for application %d", applicationID))
			svr.JSON(w, http.StatusBadGateway, "could not load interviews")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"interviews":   interviews,
			"has_upcoming": HasUpcoming(interviews, time.Now().UTC()),
		})
	}
}

// CreateInterviewHandler schedules a round. On success it nudges the
// application from reviewing to interviewed and emails the candidate an
// invite; both are best effort and never fail the request.
func CreateInterviewHandler(svr server.Server, repo *Repository, nudger statusNudger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			Interview
			ApplicationStatus string `json:"application_status"`
			CandidateName     string `json:"candidate_name"`
			CandidateEmail    string `json:"candidate_email"`
			JobTitle          string `json:"job_title"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		req.Notes = bluemonday.StrictPolicy().Sanitize(req.Notes)
		created, err := repo.Create(req.Interview)
		if err != nil {
			if verrs, ok := err.(ValidationErrors); ok {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": verrs})
				return
			}
			svr.Log(err, "unable to create interview")
			svr.JSON(w, http.StatusBadGateway, "could not create interview")
			return
		}
		if req.ApplicationStatus == "reviewing" {
			if err := nudger.UpdateStatus(created.JobApplicationID, "interviewed", "interview scheduled"); err != nil {
				svr.Log(err, fmt.Sprintf("unable to nudge application %d to interviewed", created.JobApplicationID))
			}
		}
		if svr.IsEmail(req.CandidateEmail) {
			go func() {
				err := svr.GetEmail().SendHTMLEmail(
					email.Address{Name: svr.GetConfig().SiteName, Email: svr.GetConfig().NoReplyEmail},
					email.Address{Name: req.CandidateName, Email: req.CandidateEmail},
					fmt.Sprintf("Interview invitation for %s", req.JobTitle),
					inviteText(created, req.JobTitle),
					string(svr.MarkdownToHTML(inviteText(created, req.JobTitle))),
				)
				if err != nil {
					svr.Log(err, fmt.Sprintf("unable to send interview invite for application %d", created.JobApplicationID))
				}
			}()
		}
		svr.JSON(w, http.StatusOK, created)
	}
}

func UpdateInterviewHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var iv Interview
		if err := json.NewDecoder(r.Body).Decode(&iv); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		iv.Notes = bluemonday.StrictPolicy().Sanitize(iv.Notes)
		updated, err := repo.Update(iv)
		if err != nil {
			if verrs, ok := err.(ValidationErrors); ok {
				svr.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": verrs})
				return
			}
			svr.Log(err, fmt.Sprintf("unable to update interview %d", iv.ID))
			svr.JSON(w, http.StatusBadGateway, "could not update interview")
			return
		}
		svr.JSON(w, http.StatusOK, updated)
	}
}

// DeleteInterviewHandler cancels a round. The request must carry an explicit
// confirmation, deletion is irreversible upstream.
func DeleteInterviewHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			ID      int  `json:"id"`
			Confirm bool `json:"confirm"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !req.Confirm {
			svr.JSON(w, http.StatusBadRequest, "interview deletion requires confirmation")
			return
		}
		if err := repo.Delete(req.ID); err != nil {
			svr.Log(err, fmt.Sprintf("unable to delete interview %d", req.ID))
			svr.JSON(w, http.StatusBadGateway, "could not delete interview")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func inviteText(iv Interview, jobTitle string) string {
	text := fmt.Sprintf(
		"You have been invited to a %s interview for %s on %s.",
		iv.InterviewType, jobTitle, iv.ScheduledAt.Format("Monday, 2 January 2006 at 15:04 MST"),
	)
	switch iv.InterviewType {
	case TypeVideo:
		text += fmt.Sprintf("\n\nJoin here: %s", iv.MeetingLink)
	case TypeInPerson:
		text += fmt.Sprintf("\n\nLocation: %s", iv.Location)
	}
	if iv.InterviewerName != "" {
		text += fmt.Sprintf("\n\nYour interviewer will be %s.", iv.InterviewerName)
	}
	return text
}
