package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
	"github.com/go-pkgz/syncs"
	"github.com/robfig/cron/v3"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/yourtube/app/batch"
	"github.com/umputun/yourtube/app/conditions"
	"github.com/umputun/yourtube/app/fetch"
	"github.com/umputun/yourtube/app/history"
	ytnotify "github.com/umputun/yourtube/app/notify"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/remote"
	"github.com/umputun/yourtube/app/sink"
	"github.com/umputun/yourtube/app/stream"
	"github.com/umputun/yourtube/app/web"
)

var opts struct {
	Server  string        `short:"s" long:"server" env:"YT_SERVER" default:"http://localhost:5000" description:"download server address"`
	Prefix  string        `long:"prefix" env:"YT_PREFIX" description:"path prefix the server is mounted on"`
	Timeout time.Duration `long:"timeout" env:"YT_TIMEOUT" default:"30s" description:"timeout for server calls"`
	Quiet   bool          `short:"q" long:"quiet" env:"YT_QUIET" description:"show status changes only, skip job output"`
	NoColor bool          `long:"no-color" env:"YT_NO_COLOR" description:"disable colored output"`
	Dbg     bool          `long:"dbg" env:"YT_DEBUG" description:"debug mode"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging"`
		Filename        string `long:"filename" env:"FILENAME" description:"file name to write logs to, stderr if empty"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"maximum size in megabytes before rotation"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"maximum number of old log files to retain"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"maximum number of days to retain old log files"`
		EnabledCompress bool   `long:"enabled-compress" env:"ENABLED_COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"YT_LOG"`

	Stream struct {
		RetryDelay      time.Duration `long:"retry-delay" env:"RETRY_DELAY" default:"3s" description:"delay between event stream retries"`
		MaxRetries      int           `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"event stream retries before the connection is lost"`
		ReconnectDelay  time.Duration `long:"reconnect-delay" env:"RECONNECT_DELAY" default:"5s" description:"delay before reconnecting a lost connection"`
		MaxReconnects   int           `long:"max-reconnects" env:"MAX_RECONNECTS" default:"0" description:"reconnects per job, 0 for unlimited"`
		CompletionGrace time.Duration `long:"grace" env:"GRACE" default:"5s" description:"delay between completion and disconnect"`
		MaxLogLines     int           `long:"max-log" env:"MAX_LOG" default:"1000" description:"job log lines kept for the status api"`
	} `group:"stream" namespace:"stream" env-namespace:"YT_STREAM"`

	Queue struct {
		Interval    time.Duration `long:"interval" env:"INTERVAL" default:"2s" description:"status poll interval"`
		Concurrency int           `long:"concurrency" env:"CONCURRENCY" default:"4" description:"parallel submissions of a batch"`
	} `group:"queue" namespace:"queue" env-namespace:"YT_QUEUE"`

	Web struct {
		Enabled   bool    `long:"enabled" env:"ENABLED" description:"enable status api"`
		Address   string  `long:"address" env:"ADDRESS" default:"127.0.0.1:8080" description:"status api listen address"`
		Password  string  `long:"password" env:"PASSWORD" description:"bcrypt hash of basic auth password, user yourtube"`
		RateLimit float64 `long:"rate-limit" env:"RATE_LIMIT" default:"10" description:"max requests per second per client"`
	} `group:"web" namespace:"web" env-namespace:"YT_WEB"`

	Notify struct {
		EnabledError       bool          `long:"enabled-error" env:"ENABLED_ERROR" description:"enable notifications on errors"`
		EnabledCompletion  bool          `long:"enabled-complete" env:"ENABLED_COMPLETE" description:"enable completion notifications"`
		SMTPHost           string        `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host"`
		SMTPPort           int           `long:"smtp-port" env:"SMTP_PORT" default:"25" description:"SMTP port"`
		SMTPUsername       string        `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP user name"`
		SMTPPassword       string        `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
		SMTPTLS            bool          `long:"smtp-tls" env:"SMTP_TLS" description:"enable SMTP TLS"`
		SMTPStartTLS       bool          `long:"smtp-starttls" env:"SMTP_STARTTLS" description:"enable SMTP StartTLS"`
		SMTPTimeOut        time.Duration `long:"smtp-timeout" env:"SMTP_TIMEOUT" default:"10s" description:"SMTP TCP connection timeout"`
		FromEmail          string        `long:"from" env:"FROM" description:"SMTP from email"`
		ToEmails           []string      `long:"to" env:"TO" description:"SMTP to email(s)" env-delim:","`
		SlackToken         string        `long:"slack-token" env:"SLACK_TOKEN" description:"slack token"`
		SlackChannels      []string      `long:"slack-channel" env:"SLACK_CHANNEL" description:"slack channel(s)" env-delim:","`
		WebhookURLs        []string      `long:"webhook-url" env:"WEBHOOK_URL" description:"webhook url(s)" env-delim:","`
		WebhookHeaders     []string      `long:"webhook-header" env:"WEBHOOK_HEADER" description:"webhook header(s), Name:value" env-delim:","`
		ErrorTemplate      string        `long:"err-template" env:"ERR_TEMPLATE" description:"error message template file"`
		CompletionTemplate string        `long:"complete-template" env:"COMPLETE_TEMPLATE" description:"completion message template file"`
		HostName           string        `long:"host" env:"HOSTNAME" description:"host name running yourtube"`
		Timeout            time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for a single notification"`
	} `group:"notify" namespace:"notify" env-namespace:"YT_NOTIFY"`

	History struct {
		Enabled bool   `long:"enabled" env:"ENABLED" description:"record finished jobs and queue items"`
		DBPath  string `long:"db" env:"DB" default:"yourtube.db" description:"history database file"`
	} `group:"history" namespace:"history" env-namespace:"YT_HISTORY"`

	Fetch struct {
		Dir           string        `long:"dir" env:"DIR" description:"fetch files of completed queue items into this directory"`
		Concurrency   int           `long:"concurrency" env:"CONCURRENCY" default:"2" description:"parallel file fetches"`
		MaxChecks     int           `long:"max-checks" env:"MAX_CHECKS" default:"10" description:"max concurrent condition checks"`
		CheckDelay    time.Duration `long:"check-delay" env:"CHECK_DELAY" default:"30s" description:"delay between condition checks"`
		CheckTries    int           `long:"check-tries" env:"CHECK_TRIES" default:"10" description:"condition checks before the fetch is skipped"`
		CPUBelow      int           `long:"cpu-below" env:"CPU_BELOW" description:"fetch when cpu usage is below this percent"`
		MemoryBelow   int           `long:"memory-below" env:"MEMORY_BELOW" description:"fetch when memory usage is below this percent"`
		LoadAvgBelow  float64       `long:"load-below" env:"LOAD_BELOW" description:"fetch when 1m load average is below this value"`
		DiskFreeAbove int           `long:"disk-free-above" env:"DISK_FREE_ABOVE" description:"fetch when free disk space is above this percent"`
		Custom        string        `long:"custom" env:"CUSTOM" description:"fetch when this command exits with 0"`
	} `group:"fetch" namespace:"fetch" env-namespace:"YT_FETCH"`

	DownloadCmd struct {
		URL string `long:"url" env:"YT_URL" required:"true" description:"video url"`
		Dir string `long:"dir" env:"YT_DIR" description:"server side output subdirectory"`
	} `command:"download" description:"submit a download job and follow its output"`

	WatchCmd struct {
		ID     string `long:"id" required:"true" description:"job id"`
		Subdir string `long:"subdir" description:"job output subdirectory"`
	} `command:"watch" description:"follow the output of a running job"`

	QueueCmd struct {
		URLs    []string `long:"url" description:"video url(s) to queue"`
		Quality string   `long:"quality" default:"best" description:"quality for urls, best or resolution like 720p"`
		File    string   `short:"f" long:"file" description:"yaml batch file with urls to queue"`
		NoWait  bool     `long:"no-wait" description:"exit right after the urls are queued"`
		Refresh string   `long:"refresh" description:"cron expression for full queue refresh while waiting, e.g. @every 1m"`
	} `command:"queue" description:"queue downloads and follow them to completion"`

	ListCmd struct{} `command:"list" description:"show all queued downloads"`

	HistoryCmd struct {
		Limit int `long:"limit" default:"20" description:"max records per table"`
	} `command:"history" description:"show recorded jobs and queue items"`
}

var revision = "unknown"

// errIncomplete reports a job stream which ended without completion
var errIncomplete = errors.New("job ended without completion")

func main() {
	fmt.Printf("yourtube %s\n", revision)

	p := flags.NewParser(&opts, flags.Default)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals(cancel) // handle SIGQUIT, SIGINT and SIGTERM

	if err := run(ctx, p.Active.Name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		log.Printf("[WARN] %s failed: %v", p.Active.Name, err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	if command == "history" {
		return showHistory(ctx, os.Stdout, opts.History.DBPath, opts.HistoryCmd.Limit)
	}

	client, err := remote.New(remote.Params{Server: opts.Server, Prefix: opts.Prefix, Timeout: opts.Timeout,
		RetryDelay: opts.Stream.RetryDelay, MaxRetries: opts.Stream.MaxRetries})
	if err != nil {
		return fmt.Errorf("can't make server client: %w", err)
	}

	a, err := newApp(ctx, client)
	if err != nil {
		return err
	}
	defer a.close()

	switch command {
	case "download":
		return a.download(ctx, stream.JobRequest{URL: opts.DownloadCmd.URL, Directory: opts.DownloadCmd.Dir})
	case "watch":
		return a.watch(ctx, stream.JobHandle{ID: opts.WatchCmd.ID, Token: opts.WatchCmd.Subdir})
	case "queue":
		reqs, err := queueRequests(opts.QueueCmd.URLs, opts.QueueCmd.Quality, opts.QueueCmd.File)
		if err != nil {
			return err
		}
		return a.queue(ctx, reqs, opts.QueueCmd.NoWait, opts.QueueCmd.Refresh)
	case "list":
		_, err := a.poller.RefreshAll(ctx)
		return err
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// application wires the server client with display sinks and finish handlers
type application struct {
	tracker  *stream.Tracker
	poller   *queue.Poller
	store    *history.Store
	notifier *ytnotify.Service
	fetcher  *fetch.Fetcher
	server   *web.Server

	serverDone chan struct{}
	cancel     context.CancelFunc
}

func newApp(ctx context.Context, client *remote.Client) (*application, error) {
	display := sink.Multi{sink.NewConsole(sink.ConsoleParams{Quiet: opts.Quiet, NoColor: opts.NoColor})}
	if opts.Log.Enabled || opts.Dbg {
		display = append(display, sink.NewLogger())
	}

	res := &application{}
	var streamHandlers []stream.EventHandler
	var queueHandlers []queue.EventHandler

	if opts.History.Enabled {
		store, err := history.NewStore(opts.History.DBPath)
		if err != nil {
			return nil, fmt.Errorf("can't open history: %w", err)
		}
		res.store = store
		streamHandlers = append(streamHandlers, store)
		queueHandlers = append(queueHandlers, store)
	}

	if res.notifier = makeNotifier(); res.notifier != nil {
		streamHandlers = append(streamHandlers, res.notifier)
		queueHandlers = append(queueHandlers, res.notifier)
	}

	if opts.Fetch.Dir != "" {
		res.fetcher = fetch.New(ctx, fetch.Params{
			Downloader:  client,
			Dir:         opts.Fetch.Dir,
			Conditions:  makeConditions(),
			Checker:     conditions.NewChecker(opts.Fetch.MaxChecks),
			CheckDelay:  opts.Fetch.CheckDelay,
			CheckTries:  opts.Fetch.CheckTries,
			Concurrency: opts.Fetch.Concurrency,
			Reporter:    display,
		})
		queueHandlers = append(queueHandlers, res.fetcher)
	}

	res.tracker = stream.NewTracker(stream.Params{
		Source:          client,
		Sink:            display,
		Submitter:       client,
		Handlers:        streamHandlers,
		CompletionGrace: opts.Stream.CompletionGrace,
		ReconnectDelay:  opts.Stream.ReconnectDelay,
		MaxReconnects:   opts.Stream.MaxReconnects,
		MaxLogLines:     opts.Stream.MaxLogLines,
	})
	res.poller = queue.NewPoller(queue.Params{API: client, Sink: display, Interval: opts.Queue.Interval, Handlers: queueHandlers})

	if opts.Web.Enabled {
		cfg := web.Config{Sessions: res.tracker, Queue: res.poller, Version: revision, Hostname: makeHostName(),
			PasswordHash: opts.Web.Password, RateLimit: opts.Web.RateLimit}
		if res.store != nil {
			cfg.History = res.store
		}
		res.server = web.New(cfg)
		var webCtx context.Context
		webCtx, res.cancel = context.WithCancel(ctx)
		res.serverDone = make(chan struct{})
		go func() {
			defer close(res.serverDone)
			if err := res.server.Run(webCtx, opts.Web.Address); err != nil {
				log.Printf("[WARN] status api stopped: %v", err)
			}
		}()
	}
	return res, nil
}

// download submits the job and follows it until the stream is retired
func (a *application) download(ctx context.Context, req stream.JobRequest) error {
	if _, err := a.tracker.Submit(ctx, req); err != nil {
		return err
	}
	return a.waitStream(ctx)
}

// watch attaches to a job submitted earlier
func (a *application) watch(ctx context.Context, h stream.JobHandle) error {
	a.tracker.Start(ctx, h)
	return a.waitStream(ctx)
}

func (a *application) waitStream(ctx context.Context) error {
	completed, err := a.tracker.Wait(ctx)
	if err != nil {
		a.tracker.Stop()
		return fmt.Errorf("interrupted: %w", err)
	}
	if !completed {
		return errIncomplete
	}
	return nil
}

// queue submits all requests with bounded concurrency and waits for every accepted item to finish
func (a *application) queue(ctx context.Context, reqs []queue.Request, noWait bool, refresh string) error {
	var mu sync.Mutex
	rejected := 0
	wg := syncs.NewSizedGroup(max(opts.Queue.Concurrency, 1))
	for _, req := range reqs {
		wg.Go(func(context.Context) {
			if _, err := a.poller.Enqueue(ctx, req); err != nil {
				log.Printf("[WARN] %v", err)
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	log.Printf("[INFO] queued %d of %d urls", len(reqs)-rejected, len(reqs))

	if noWait {
		a.poller.Close()
	} else {
		if refresh != "" {
			c := cron.New()
			if _, err := c.AddFunc(refresh, func() {
				if _, err := a.poller.RefreshAll(ctx); err != nil {
					log.Printf("[WARN] scheduled refresh failed: %v", err)
				}
			}); err != nil {
				a.poller.Close()
				return fmt.Errorf("invalid refresh schedule %q: %w", refresh, err)
			}
			c.Start()
			defer c.Stop()
		}
		if err := a.poller.Wait(ctx); err != nil {
			a.poller.Close()
			return fmt.Errorf("interrupted: %w", err)
		}
	}
	if a.fetcher != nil && !noWait {
		a.fetcher.Wait()
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d urls rejected: %w", rejected, len(reqs), remote.ErrSubmissionRejected)
	}
	return nil
}

func (a *application) close() {
	if a.cancel != nil {
		a.cancel()
		<-a.serverDone
	}
	a.tracker.Stop()
	a.poller.Close()
	if a.fetcher != nil {
		a.fetcher.Close()
	}
	if a.notifier != nil {
		a.notifier.Wait()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("[WARN] failed to close history: %v", err)
		}
	}
}

// queueRequests collects requests from command line urls and the batch file
func queueRequests(urls []string, quality, file string) ([]queue.Request, error) {
	cfg := batch.Config{Quality: quality}
	for _, u := range urls {
		cfg.Jobs = append(cfg.Jobs, queue.Request{URL: strings.TrimSpace(u), Quality: quality})
	}
	if len(cfg.Jobs) > 0 {
		if err := batch.Verify(&cfg); err != nil {
			return nil, fmt.Errorf("invalid queue request: %w", err)
		}
	}

	res := cfg.Jobs
	if file != "" {
		fileCfg, err := batch.Load(file)
		if err != nil {
			return nil, err
		}
		res = append(res, fileCfg.Jobs...)
	}
	if len(res) == 0 {
		return nil, errors.New("nothing to queue, set --url or --file")
	}
	return res, nil
}

func makeConditions() conditions.Config {
	res := conditions.Config{Custom: opts.Fetch.Custom, DiskFreePath: opts.Fetch.Dir}
	if v := opts.Fetch.CPUBelow; v > 0 {
		res.CPUBelow = &v
	}
	if v := opts.Fetch.MemoryBelow; v > 0 {
		res.MemoryBelow = &v
	}
	if v := opts.Fetch.LoadAvgBelow; v > 0 {
		res.LoadAvgBelow = &v
	}
	if v := opts.Fetch.DiskFreeAbove; v > 0 {
		res.DiskFreeAbove = &v
	}
	return res
}

func makeNotifier() *ytnotify.Service {
	if !opts.Notify.EnabledError && !opts.Notify.EnabledCompletion {
		return nil
	}

	if opts.Notify.FromEmail == "" {
		opts.Notify.FromEmail = "yourtube@" + makeHostName()
	}

	return ytnotify.NewService(
		ytnotify.Params{
			EnabledError:       opts.Notify.EnabledError,
			EnabledCompletion:  opts.Notify.EnabledCompletion,
			Hostname:           makeHostName(),
			ErrorTemplate:      opts.Notify.ErrorTemplate,
			CompletionTemplate: opts.Notify.CompletionTemplate,
			Timeout:            opts.Notify.Timeout,
		},
		ytnotify.SendersParams{
			SMTP: notify.SMTPParams{
				Host:        opts.Notify.SMTPHost,
				Port:        opts.Notify.SMTPPort,
				TLS:         opts.Notify.SMTPTLS,
				StartTLS:    opts.Notify.SMTPStartTLS,
				Username:    opts.Notify.SMTPUsername,
				Password:    opts.Notify.SMTPPassword,
				TimeOut:     opts.Notify.SMTPTimeOut,
				ContentType: "text/plain",
			},
			FromEmail:      opts.Notify.FromEmail,
			ToEmails:       opts.Notify.ToEmails,
			SlackToken:     opts.Notify.SlackToken,
			SlackChannels:  opts.Notify.SlackChannels,
			WebhookURLs:    opts.Notify.WebhookURLs,
			WebhookHeaders: opts.Notify.WebhookHeaders,
		},
	)
}

func makeHostName() string {
	if opts.Notify.HostName != "" {
		return opts.Notify.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// setupLogs configures the log and returns its destination
func setupLogs() io.Writer {
	if !opts.Log.Enabled && !opts.Dbg {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
		return io.Discard
	}

	var out io.Writer = os.Stderr
	if opts.Log.Filename != "" {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Dbg {
		log.Setup(log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile, log.Out(out), log.Err(out))
		return out
	}
	log.Setup(log.Msec, log.Out(out), log.Err(out))
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGINT and SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
}
