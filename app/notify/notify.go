// Package notify delivers job and queue results to notification destinations (email, slack, webhooks).
// Service implements stream and queue event handlers and sends in background, never blocking the caller.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/template"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
	"github.com/go-pkgz/syncs"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
)

const defaultErrorTemplate = `yourtube {{.Kind}} {{.ID}} failed on {{.Host}} at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}
{{if .Title}}title: {{.Title}}
{{end}}{{if .URL}}url: {{.URL}}
{{end}}status: {{.Status}}
{{if .Error}}error: {{.Error}}
{{end}}`

const defaultCompletionTemplate = `yourtube {{.Kind}} {{.ID}} completed on {{.Host}} at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}
{{if .Title}}title: {{.Title}}
{{end}}{{if .URL}}url: {{.URL}}
{{end}}{{if .Duration}}duration: {{.Duration}}
{{end}}`

// Service sends notifications about finished jobs and queue items
type Service struct {
	destinations []notify.Notifier
	targets      []string // destination urls, matched to notifiers by schema
	params       Params
	errTmpl      *template.Template
	doneTmpl     *template.Template
	wg           *syncs.SizedGroup
}

// Params defines what and how to notify
type Params struct {
	EnabledError       bool
	EnabledCompletion  bool
	Hostname           string        // defaults to os hostname
	ErrorTemplate      string        // text/template file for failures, built-in template if empty or broken
	CompletionTemplate string        // text/template file for completions, built-in template if empty or broken
	Timeout            time.Duration // per send, 30s by default
}

// SendersParams defines notification destinations
type SendersParams struct {
	SMTP      notify.SMTPParams
	FromEmail string
	ToEmails  []string

	SlackToken    string
	SlackChannels []string

	WebhookURLs    []string
	WebhookHeaders []string // "Name:value" pairs
}

// message is the data passed to templates
type message struct {
	Kind     string // job or queue
	ID       string
	Title    string
	URL      string
	Status   string
	Error    string
	Duration time.Duration
	Host     string
	TS       time.Time
}

// NewService makes notification service, returns nil if no destinations defined
func NewService(p Params, sp SendersParams) *Service {
	res := &Service{params: p, wg: syncs.NewSizedGroup(4)}
	if res.params.Timeout <= 0 {
		res.params.Timeout = 30 * time.Second
	}
	if res.params.Hostname == "" {
		res.params.Hostname, _ = os.Hostname()
	}

	if len(sp.ToEmails) > 0 {
		res.destinations = append(res.destinations, notify.NewEmail(sp.SMTP))
		q := url.Values{}
		if sp.FromEmail != "" {
			q.Set("from", sp.FromEmail)
		}
		res.targets = append(res.targets, "mailto:"+strings.Join(sp.ToEmails, ",")+"?"+q.Encode())
	}
	if sp.SlackToken != "" && len(sp.SlackChannels) > 0 {
		res.destinations = append(res.destinations, notify.NewSlack(sp.SlackToken))
		for _, ch := range sp.SlackChannels {
			res.targets = append(res.targets, "slack:"+strings.TrimPrefix(ch, "#"))
		}
	}
	if len(sp.WebhookURLs) > 0 {
		res.destinations = append(res.destinations,
			notify.NewWebhook(notify.WebhookParams{Timeout: res.params.Timeout, Headers: sp.WebhookHeaders}))
		res.targets = append(res.targets, sp.WebhookURLs...)
	}
	if len(res.destinations) == 0 {
		return nil
	}

	res.errTmpl = loadTemplate("error", p.ErrorTemplate, defaultErrorTemplate)
	res.doneTmpl = loadTemplate("completion", p.CompletionTemplate, defaultCompletionTemplate)
	log.Printf("[INFO] notifications enabled, destinations: %v, on error: %v, on completion: %v",
		res.destinations, p.EnabledError, p.EnabledCompletion)
	return res
}

// IsOnError returns true if failure notifications enabled
func (s *Service) IsOnError() bool { return s.params.EnabledError }

// IsOnCompletion returns true if completion notifications enabled
func (s *Service) IsOnCompletion() bool { return s.params.EnabledCompletion }

// OnStreamStart implements stream.EventHandler, nothing is sent on start
func (s *Service) OnStreamStart(request.OnStreamStart) {}

// OnStreamComplete implements stream.EventHandler
func (s *Service) OnStreamComplete(req request.OnStreamComplete) {
	msg := message{Kind: "job", ID: req.JobID, Title: req.Token, Status: req.LastStatus,
		Duration: req.EndTime.Sub(req.StartTime).Truncate(time.Second)}
	if req.Completed {
		s.notify(true, "yourtube: job "+req.JobID+" completed", msg)
		return
	}
	msg.Error = fmt.Sprintf("stream ended without completion after %d lines, %d reconnects", req.Lines, req.Reconnects)
	s.notify(false, "yourtube: job "+req.JobID+" failed", msg)
}

// OnQueueFinished implements queue.EventHandler
func (s *Service) OnQueueFinished(req request.OnQueueFinished) {
	title := req.Title
	if title == "" {
		title = req.URL
	}
	msg := message{Kind: "queue item", ID: req.QueueID, Title: req.Title, URL: req.URL, Status: req.Status.String(),
		Error: req.Error, Duration: req.FinishedAt.Sub(req.CreatedAt).Truncate(time.Second)}
	if req.CreatedAt.IsZero() {
		msg.Duration = 0
	}
	ok := req.Status == enums.QueueStatusCompleted
	subj := "yourtube: " + title + " completed"
	if !ok {
		subj = "yourtube: " + title + " failed"
	}
	s.notify(ok, subj, msg)
}

// Wait for all pending sends
func (s *Service) Wait() {
	s.wg.Wait()
}

// Send text with subject to all destinations. Errors of individual destinations are combined.
// Destinations without subject support get it as the first line of the text.
func (s *Service) Send(ctx context.Context, subj, text string) error {
	var errs []error
	for _, target := range s.targets {
		dest, ok := withSubject(target, subj)
		body := text
		if !ok && subj != "" {
			body = subj + "\n\n" + text
		}
		if err := notify.Send(ctx, s.destinations, dest, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notify renders the message and sends it in background if the kind of notification is enabled
func (s *Service) notify(completed bool, subj string, msg message) {
	if (completed && !s.params.EnabledCompletion) || (!completed && !s.params.EnabledError) {
		return
	}
	msg.Host, msg.TS = s.params.Hostname, time.Now()
	tmpl := s.errTmpl
	if completed {
		tmpl = s.doneTmpl
	}
	buf := bytes.Buffer{}
	if err := tmpl.Execute(&buf, msg); err != nil {
		log.Printf("[WARN] can't render %s notification for %s: %v", tmpl.Name(), msg.ID, err)
		return
	}
	text := buf.String()
	s.wg.Go(func(context.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), s.params.Timeout)
		defer cancel()
		if err := s.Send(ctx, subj, text); err != nil {
			log.Printf("[WARN] can't send notification %q: %v", subj, err)
			return
		}
		log.Printf("[DEBUG] notification %q sent", subj)
	})
}

// withSubject adds subject to destinations supporting it, returns false for others
func withSubject(target, subj string) (string, bool) {
	key := ""
	switch {
	case strings.HasPrefix(target, "mailto:"):
		key = "subject"
	case strings.HasPrefix(target, "slack:"):
		key = "title"
	default:
		return target, false
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
		if strings.HasSuffix(target, "?") {
			sep = ""
		}
	}
	return target + sep + url.Values{key: {subj}}.Encode(), true
}

// loadTemplate reads custom template file, falls back to the built-in one on any error
func loadTemplate(name, file, def string) *template.Template {
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // file from trusted options
		if err == nil {
			tmpl, perr := template.New(name).Parse(string(data))
			if perr == nil {
				return tmpl
			}
			err = perr
		}
		log.Printf("[WARN] can't use %s template %s, fallback to default: %v", name, file, err)
	}
	return template.Must(template.New(name).Parse(def))
}
