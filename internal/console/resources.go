// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leaguehq/leaguehq/internal/client"
	"github.com/leaguehq/leaguehq/internal/controller"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/render"
	"github.com/leaguehq/leaguehq/internal/session"
)

// resourceDef wires one entity's API collection to a console page: the
// descriptor drives the form, Row turns a record into table cells.
type resourceDef[T any] struct {
	Slug       string
	Title      string
	APIPath    string
	Descriptor controller.Descriptor[T]
	Columns    []string
	// Row formats a record for the table. teamNames maps team IDs to
	// names when the page loads team options; otherwise it is empty.
	Row func(record T, teamNames map[int64]string) []string
	// TeamOptions loads the team list for reference selects.
	TeamOptions bool
	// SelectFields lists descriptor fields rendered as team selects.
	SelectFields []string
	// Choices maps a field to a fixed value list rendered as a select.
	Choices map[string][]string
	// Labels overrides the auto-derived form labels per field.
	Labels map[string]string
	// CanTransfer adds the transfer form to each row.
	CanTransfer bool
	// AdminOnlyEdit hides the form and row actions from non-admins.
	AdminOnlyEdit bool
}

// resourceView is the template data of the generic resource page.
type resourceView struct {
	Slug        string
	Columns     []string
	Rows        []resourceRow
	Fields      []formField
	EditingID   string
	Options     []controller.Option
	CanEdit     bool
	CanTransfer bool
}

type resourceRow struct {
	ID    int64
	Cells []string
}

type formField struct {
	Name      string
	Label     string
	Value     string
	Required  bool
	InputType string
	Options   []selectOption
	HasSelect bool
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// storedDraft is the JSON shape of form state parked in the browser
// session across a failed submit.
type storedDraft struct {
	Fields    map[string]string `json:"fields"`
	EditingID *int64            `json:"editing_id,omitempty"`
}

// registerResource mounts the list, save and delete routes for one entity.
func registerResource[T any](r chi.Router, c *Console, def resourceDef[T]) {
	registerResourceList(r, c, def)
	registerResourceWrites(r, c, def)
}

// registerResourceList mounts only the read-side page, for resources whose
// list is visible to a wider audience than its writes.
func registerResourceList[T any](r chi.Router, c *Console, def resourceDef[T]) {
	r.Get("/"+def.Slug, listPage(c, def))
}

func registerResourceWrites[T any](r chi.Router, c *Console, def resourceDef[T]) {
	r.Post("/"+def.Slug+"/save", savePage(c, def))
	r.Post("/"+def.Slug+"/delete", deletePage(c, def))
}

func newResourceController[T any](c *Console, def resourceDef[T], sess *session.Store) *controller.Controller[T] {
	res := client.NewResource[T](c.cfg.APIBaseURL, def.APIPath, sess, c.http)
	ctrl := controller.New(res, def.Descriptor)
	if def.TeamOptions {
		ctrl = ctrl.WithOptions(c.teamOptions(sess))
	}
	return ctrl
}

// teamOptions loads the team list for reference selects. Failures leave
// the select empty and never block the page.
func (c *Console) teamOptions(sess *session.Store) controller.OptionsLoader {
	teams := client.NewResource[model.Team](c.cfg.APIBaseURL, "/api/teams", sess, c.http)
	return func(ctx context.Context) ([]controller.Option, error) {
		list, err := teams.List(ctx)
		if err != nil {
			return nil, err
		}
		options := make([]controller.Option, 0, len(list))
		for _, team := range list {
			options = append(options, controller.Option{ID: team.ID, Label: team.Name})
		}
		return options, nil
	}
}

func listPage[T any](c *Console, def resourceDef[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		ctrl := newResourceController(c, def, sess)

		// Reinstate form state parked by a failed save.
		if draft := c.popDraft(r, def.Slug); draft != nil {
			ctrl.RestoreDraft(draft.Fields, draft.EditingID)
		}

		ctrl.LoadOptions(r.Context())
		if err := ctrl.Refresh(r.Context()); err != nil {
			c.renderer.SetFlash(r, ctrl.Err(), "error")
		}

		// ?edit=N prefills the form from the listed record.
		if raw := r.URL.Query().Get("edit"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				for _, record := range ctrl.List() {
					if def.Descriptor.ID(record) == id {
						ctrl.StartEdit(record)
						break
					}
				}
			}
		}

		renderResource(c, w, r, def, ctrl, sess)
	}
}

func savePage[T any](c *Console, def resourceDef[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			c.flashError(w, r, "/"+def.Slug, "Invalid form data.")
			return
		}

		sess := currentSession(r)
		ctrl := newResourceController(c, def, sess)

		draft := make(map[string]string, len(def.Descriptor.Fields))
		for _, field := range def.Descriptor.Fields {
			draft[field.Name] = r.FormValue(field.Name)
		}
		var editingID *int64
		if raw := r.FormValue("id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.flashError(w, r, "/"+def.Slug, "Invalid record ID.")
				return
			}
			editingID = &id
		}
		ctrl.RestoreDraft(draft, editingID)

		if err := ctrl.Submit(r.Context()); err != nil {
			// Park the draft so the form comes back filled in.
			c.storeDraft(r, def.Slug, draft, editingID)
			c.flashError(w, r, "/"+def.Slug, ctrl.Err())
			return
		}

		c.renderer.SetFlash(r, def.Title+" saved.", "success")
		http.Redirect(w, r, "/"+def.Slug, http.StatusSeeOther)
	}
}

func deletePage[T any](c *Console, def resourceDef[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			c.flashError(w, r, "/"+def.Slug, "Invalid form data.")
			return
		}
		id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
		if err != nil {
			c.flashError(w, r, "/"+def.Slug, "Invalid record ID.")
			return
		}

		confirmed := r.FormValue("confirm") == "yes"
		if !confirmed {
			c.renderer.SetFlash(r, "Deletion needs confirmation.", "info")
			http.Redirect(w, r, "/"+def.Slug, http.StatusSeeOther)
			return
		}

		sess := currentSession(r)
		ctrl := newResourceController(c, def, sess)
		if err := ctrl.Remove(r.Context(), id, true); err != nil {
			c.flashError(w, r, "/"+def.Slug, ctrl.Err())
			return
		}

		c.renderer.SetFlash(r, def.Title+" deleted.", "success")
		http.Redirect(w, r, "/"+def.Slug, http.StatusSeeOther)
	}
}

func renderResource[T any](c *Console, w http.ResponseWriter, r *http.Request, def resourceDef[T], ctrl *controller.Controller[T], sess *session.Store) {
	user := sess.User()
	options := ctrl.Options()

	teamNames := make(map[int64]string, len(options))
	for _, opt := range options {
		teamNames[opt.ID] = opt.Label
	}

	rows := make([]resourceRow, 0, len(ctrl.List()))
	for _, record := range ctrl.List() {
		rows = append(rows, resourceRow{
			ID:    def.Descriptor.ID(record),
			Cells: def.Row(record, teamNames),
		})
	}

	view := resourceView{
		Slug:        def.Slug,
		Columns:     def.Columns,
		Rows:        rows,
		Fields:      buildFormFields(def, ctrl.Draft(), options),
		CanEdit:     !def.AdminOnlyEdit || (user != nil && user.IsAdmin()),
		CanTransfer: def.CanTransfer,
	}
	if id := ctrl.EditingID(); id != nil {
		view.EditingID = strconv.FormatInt(*id, 10)
	}
	view.Options = options

	err := c.renderer.Render(w, r, "console/resource", render.TemplateData{
		Title:  def.Title,
		Data:   view,
		User:   user,
		Active: def.Slug,
	})
	if err != nil {
		slog.Error("rendering resource page", "page", def.Slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func buildFormFields[T any](def resourceDef[T], draft map[string]string, options []controller.Option) []formField {
	fields := make([]formField, 0, len(def.Descriptor.Fields))
	for _, field := range def.Descriptor.Fields {
		f := formField{
			Name:      field.Name,
			Label:     fieldLabel(def.Labels, field.Name),
			Value:     draft[field.Name],
			Required:  field.Required,
			InputType: inputType(field),
		}

		if isSelectField(def.SelectFields, field.Name) {
			f.HasSelect = true
			if !field.Required {
				f.Options = append(f.Options, selectOption{Label: "—", Selected: f.Value == ""})
			}
			for _, opt := range options {
				value := strconv.FormatInt(opt.ID, 10)
				f.Options = append(f.Options, selectOption{
					Value:    value,
					Label:    opt.Label,
					Selected: value == f.Value,
				})
			}
		} else if choices, ok := def.Choices[field.Name]; ok {
			f.HasSelect = true
			for _, choice := range choices {
				f.Options = append(f.Options, selectOption{
					Value:    choice,
					Label:    choice,
					Selected: choice == f.Value,
				})
			}
		}

		fields = append(fields, f)
	}
	return fields
}

func isSelectField(selectFields []string, name string) bool {
	for _, field := range selectFields {
		if field == name {
			return true
		}
	}
	return false
}

func inputType(field controller.Field) string {
	switch {
	case field.Name == "password":
		return "password"
	case field.Name == "email":
		return "email"
	case field.Kind == controller.Number || field.Kind == controller.Int:
		return "number"
	default:
		return "text"
	}
}

// fieldLabel derives a form label from the field name unless the def
// overrides it.
func fieldLabel(labels map[string]string, name string) string {
	if label, ok := labels[name]; ok {
		return label
	}
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func (c *Console) storeDraft(r *http.Request, slug string, fields map[string]string, editingID *int64) {
	raw, err := json.Marshal(storedDraft{Fields: fields, EditingID: editingID})
	if err != nil {
		slog.Error("encoding draft", "page", slug, "error", err)
		return
	}
	c.sessions.Put(r.Context(), "draft_"+slug, string(raw))
}

func (c *Console) popDraft(r *http.Request, slug string) *storedDraft {
	raw := c.sessions.PopString(r.Context(), "draft_"+slug)
	if raw == "" {
		return nil
	}
	draft := &storedDraft{}
	if err := json.Unmarshal([]byte(raw), draft); err != nil {
		slog.Error("decoding draft", "page", slug, "error", err)
		return nil
	}
	return draft
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptionalTeam(id *int64, teamNames map[int64]string) string {
	if id == nil {
		return "—"
	}
	return teamName(*id, teamNames)
}

func teamName(id int64, teamNames map[int64]string) string {
	if name, ok := teamNames[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func formatOptionalScore(score *int64) string {
	if score == nil {
		return "—"
	}
	return strconv.FormatInt(*score, 10)
}

func teamsDef() resourceDef[model.Team] {
	return resourceDef[model.Team]{
		Slug:    "teams",
		Title:   "Team",
		APIPath: "/api/teams",
		Descriptor: controller.Descriptor[model.Team]{
			Fields: []controller.Field{
				{Name: "name", Kind: controller.Text, Required: true},
				{Name: "city", Kind: controller.Text},
				{Name: "logo_url", Kind: controller.Text},
			},
			ID: func(t model.Team) int64 { return t.ID },
			ToDraft: func(t model.Team) map[string]string {
				return map[string]string{"name": t.Name, "city": t.City, "logo_url": t.LogoURL}
			},
		},
		Columns: []string{"Name", "City", "Logo"},
		Row: func(t model.Team, _ map[int64]string) []string {
			return []string{t.Name, t.City, t.LogoURL}
		},
		Labels:        map[string]string{"logo_url": "Logo URL"},
		AdminOnlyEdit: true,
	}
}

func playersDef() resourceDef[model.Player] {
	return resourceDef[model.Player]{
		Slug:    "players",
		Title:   "Player",
		APIPath: "/api/players",
		Descriptor: controller.Descriptor[model.Player]{
			Fields: []controller.Field{
				{Name: "name", Kind: controller.Text, Required: true},
				{Name: "role", Kind: controller.Text},
				{Name: "base_price", Kind: controller.Number},
				{Name: "teamId", Kind: controller.OptionalRef},
			},
			ID: func(p model.Player) int64 { return p.ID },
			ToDraft: func(p model.Player) map[string]string {
				draft := map[string]string{
					"name":       p.Name,
					"role":       p.Role,
					"base_price": formatMoney(p.BasePrice),
				}
				if p.TeamID != nil {
					draft["teamId"] = strconv.FormatInt(*p.TeamID, 10)
				}
				return draft
			},
		},
		Columns: []string{"Name", "Role", "Base price", "Current price", "Team"},
		Row: func(p model.Player, teamNames map[int64]string) []string {
			team := "Unassigned"
			if p.Team != nil {
				team = p.Team.Name
			} else if p.TeamID != nil {
				team = teamName(*p.TeamID, teamNames)
			}
			return []string{p.Name, p.Role, formatMoney(p.BasePrice), formatMoney(p.CurrentPrice), team}
		},
		TeamOptions:   true,
		SelectFields:  []string{"teamId"},
		Labels:        map[string]string{"teamId": "Team"},
		CanTransfer:   true,
		AdminOnlyEdit: true,
	}
}

func matchesDef() resourceDef[model.Match] {
	return resourceDef[model.Match]{
		Slug:    "matches",
		Title:   "Match",
		APIPath: "/api/matches",
		Descriptor: controller.Descriptor[model.Match]{
			Fields: []controller.Field{
				{Name: "match_date", Kind: controller.Text, Required: true},
				{Name: "venue", Kind: controller.Text},
				{Name: "team_a_id", Kind: controller.Int, Required: true},
				{Name: "team_b_id", Kind: controller.Int, Required: true},
				{Name: "team_a_score", Kind: controller.OptionalRef},
				{Name: "team_b_score", Kind: controller.OptionalRef},
				{Name: "winner_team_id", Kind: controller.OptionalRef},
			},
			ID: func(m model.Match) int64 { return m.ID },
			ToDraft: func(m model.Match) map[string]string {
				draft := map[string]string{
					"match_date": m.MatchDate.Format("2006-01-02"),
					"venue":      m.Venue,
					"team_a_id":  strconv.FormatInt(m.TeamAID, 10),
					"team_b_id":  strconv.FormatInt(m.TeamBID, 10),
				}
				if m.TeamAScore != nil {
					draft["team_a_score"] = strconv.FormatInt(*m.TeamAScore, 10)
				}
				if m.TeamBScore != nil {
					draft["team_b_score"] = strconv.FormatInt(*m.TeamBScore, 10)
				}
				if m.WinnerTeamID != nil {
					draft["winner_team_id"] = strconv.FormatInt(*m.WinnerTeamID, 10)
				}
				return draft
			},
		},
		Columns: []string{"Date", "Venue", "Home", "Away", "Score", "Winner"},
		Row: func(m model.Match, teamNames map[int64]string) []string {
			score := formatOptionalScore(m.TeamAScore) + " : " + formatOptionalScore(m.TeamBScore)
			return []string{
				m.MatchDate.Format("Jan 2, 2006"),
				m.Venue,
				teamName(m.TeamAID, teamNames),
				teamName(m.TeamBID, teamNames),
				score,
				formatOptionalTeam(m.WinnerTeamID, teamNames),
			}
		},
		TeamOptions:  true,
		SelectFields: []string{"team_a_id", "team_b_id", "winner_team_id"},
		Labels: map[string]string{
			"match_date":     "Date",
			"team_a_id":      "Home team",
			"team_b_id":      "Away team",
			"team_a_score":   "Home score",
			"team_b_score":   "Away score",
			"winner_team_id": "Winner",
		},
		AdminOnlyEdit: true,
	}
}

func trophiesDef() resourceDef[model.Trophy] {
	return resourceDef[model.Trophy]{
		Slug:    "trophies",
		Title:   "Trophy",
		APIPath: "/api/trophies",
		Descriptor: controller.Descriptor[model.Trophy]{
			Fields: []controller.Field{
				{Name: "title", Kind: controller.Text, Required: true},
				{Name: "season", Kind: controller.Text},
				{Name: "times_won", Kind: controller.Int},
				{Name: "winner_team_id", Kind: controller.OptionalRef},
			},
			ID: func(t model.Trophy) int64 { return t.ID },
			ToDraft: func(t model.Trophy) map[string]string {
				draft := map[string]string{
					"title":     t.Title,
					"season":    t.Season,
					"times_won": strconv.FormatInt(t.TimesWon, 10),
				}
				if t.WinnerTeamID != nil {
					draft["winner_team_id"] = strconv.FormatInt(*t.WinnerTeamID, 10)
				}
				return draft
			},
		},
		Columns: []string{"Title", "Season", "Times won", "Holder"},
		Row: func(t model.Trophy, teamNames map[int64]string) []string {
			return []string{
				t.Title,
				t.Season,
				strconv.FormatInt(t.TimesWon, 10),
				formatOptionalTeam(t.WinnerTeamID, teamNames),
			}
		},
		TeamOptions:   true,
		SelectFields:  []string{"winner_team_id"},
		Labels:        map[string]string{"winner_team_id": "Holder", "times_won": "Times won"},
		AdminOnlyEdit: true,
	}
}

func revenuesDef() resourceDef[model.Revenue] {
	return resourceDef[model.Revenue]{
		Slug:    "revenues",
		Title:   "Revenue",
		APIPath: "/api/revenues",
		Descriptor: controller.Descriptor[model.Revenue]{
			Fields: []controller.Field{
				{Name: "source", Kind: controller.Text, Required: true},
				{Name: "amount", Kind: controller.Number},
			},
			ID: func(rv model.Revenue) int64 { return rv.ID },
			ToDraft: func(rv model.Revenue) map[string]string {
				return map[string]string{"source": rv.Source, "amount": formatMoney(rv.Amount)}
			},
		},
		Columns: []string{"Source", "Amount"},
		Row: func(rv model.Revenue, _ map[int64]string) []string {
			return []string{rv.Source, formatMoney(rv.Amount)}
		},
		AdminOnlyEdit: true,
	}
}

func investorsDef() resourceDef[model.Investor] {
	return resourceDef[model.Investor]{
		Slug:    "investors",
		Title:   "Investor",
		APIPath: "/api/investors",
		Descriptor: controller.Descriptor[model.Investor]{
			Fields: []controller.Field{
				{Name: "name", Kind: controller.Text, Required: true},
				{Name: "contribution", Kind: controller.Number},
			},
			ID: func(inv model.Investor) int64 { return inv.ID },
			ToDraft: func(inv model.Investor) map[string]string {
				return map[string]string{"name": inv.Name, "contribution": formatMoney(inv.Contribution)}
			},
		},
		Columns: []string{"Name", "Contribution"},
		Row: func(inv model.Investor, _ map[int64]string) []string {
			return []string{inv.Name, formatMoney(inv.Contribution)}
		},
		AdminOnlyEdit: true,
	}
}

func usersDef() resourceDef[model.User] {
	return resourceDef[model.User]{
		Slug:    "users",
		Title:   "User",
		APIPath: "/api/users",
		Descriptor: controller.Descriptor[model.User]{
			Fields: []controller.Field{
				{Name: "name", Kind: controller.Text, Required: true},
				{Name: "email", Kind: controller.Text, Required: true},
				{Name: "role", Kind: controller.Text, Required: true},
				{Name: "password", Kind: controller.Text},
			},
			ID: func(u model.User) int64 { return u.ID },
			ToDraft: func(u model.User) map[string]string {
				// The password never round-trips through the form.
				return map[string]string{"name": u.Name, "email": u.Email, "role": u.Role}
			},
		},
		Columns: []string{"Name", "Email", "Role", "Last login"},
		Row: func(u model.User, _ map[int64]string) []string {
			lastLogin := "never"
			if u.LastLoginAt != nil {
				lastLogin = u.LastLoginAt.Format("Jan 2, 2006 3:04 PM")
			}
			return []string{u.Name, u.Email, u.Role, lastLogin}
		},
		Choices:       map[string][]string{"role": {model.RoleAdmin, model.RoleUser}},
		AdminOnlyEdit: true,
	}
}
