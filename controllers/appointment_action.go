package controllers

import (
	"fmt"
	"log/slog"
	"strings"

	"barbershop-web/models"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

type actionText struct {
	title   string
	confirm string
	button  string
	failure string
}

var appointmentActionText = map[models.Action]actionText{
	models.ActionApprove: {
		failure: "Failed to approve appointment.",
	},
	models.ActionReject: {
		title:   "Reject Appointment",
		confirm: "Are you sure you want to reject this appointment?",
		button:  "Reject",
		failure: "Failed to reject appointment.",
	},
	models.ActionComplete: {
		failure: "Failed to mark appointment as completed.",
	},
	models.ActionCancel: {
		title:   "Cancel Appointment",
		confirm: "Are you sure you want to cancel this appointment?",
		button:  "Yes, cancel",
		failure: "Failed to cancel appointment.",
	},
	models.ActionDelete: {
		title:   "Delete Appointment",
		confirm: "Are you sure you want to delete this appointment? This action cannot be undone.",
		button:  "Delete",
		failure: "Failed to delete appointment.",
	},
}

// actionRequest is one appointment action posted from a table row.
type actionRequest struct {
	id      int64
	action  models.Action
	offered models.ActionSet
	repost  string
	fields  map[string]string
}

func actionSet(actions ...models.Action) models.ActionSet {
	set := models.ActionSet{}
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// performFunc calls the backend for a and returns the local change to apply
// once the call succeeded.
type performFunc func(a models.Appointment) (*models.AppointmentChange, error)

// actionResult is either a confirmation to render in place or the outcome
// to carry across the redirect back to the view.
type actionResult struct {
	confirm *Dialog
	outcome utils.Flash
}

// runAction checks that the action is offered for the appointment's status,
// asks for confirmation where needed, and performs it. Any backend failure
// becomes the action's generic failure notice and no change is carried.
func (d Deps) runAction(c *gin.Context, list models.Appointments, req actionRequest, perform performFunc) actionResult {
	const op = "controllers.runAction"

	text, known := appointmentActionText[req.action]
	if !known || !req.offered.Has(req.action) {
		return actionResult{outcome: failed("Unknown action.")}
	}
	a, ok := list.Find(req.id)
	if !ok {
		return actionResult{outcome: failed("Appointment not found. Please refresh the page.")}
	}
	if !a.Actions().Has(req.action) {
		return actionResult{outcome: utils.Flash{
			Title:   "Not Allowed",
			Message: fmt.Sprintf("You cannot %s an appointment that is %s.", req.action, strings.ToLower(string(a.Status))),
		}}
	}
	if models.RequiresConfirmation(req.action) && !confirmed(c) {
		return actionResult{confirm: confirmDialog(text.title, text.confirm, text.button, req.repost,
			models.Destructive(req.action), req.fields)}
	}

	change, err := perform(a)
	if err != nil {
		d.Log.Error("appointment action failed",
			slog.String("op", op),
			slog.String("action", string(req.action)),
			slog.Int64("appointment_id", req.id),
			sl.Err(err))
		return actionResult{outcome: failed(text.failure)}
	}
	d.Log.Info("appointment action applied",
		slog.String("action", string(req.action)),
		slog.Int64("appointment_id", req.id))
	return actionResult{outcome: utils.Flash{Change: change}}
}
