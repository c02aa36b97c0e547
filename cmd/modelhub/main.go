package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/skratchdot/open-golang/open"

	"modelhub/internal/cache"
	"modelhub/internal/config"
	"modelhub/internal/hub"
	"modelhub/internal/logging"
	"modelhub/internal/proxy"
	"modelhub/internal/tui"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("no command provided")
	}

	cmd := args[0]
	switch cmd {
	case "config":
		return handleConfig(ctx, args[1:])
	case "models":
		return handleModels(ctx, args[1:])
	case "setting":
		return handleSetting(ctx, args[1:])
	case "share":
		return handleShare(ctx, args[1:])
	case "hub":
		return handleHub(ctx, args[1:])
	case "version":
		fmt.Println(version)
		return nil
	case "completion":
		return handleCompletion(ctx, args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Println(strings.TrimSpace(`modelhub - terminal dashboard for a serving proxy's model hub

Usage:
  modelhub <command> [flags]

Commands:
  config validate   Validate a YAML config file
  config print      Print the loaded config as JSON
  models            List model groups (table or JSON)
  setting get       Read the public-hub flag from the proxy
  setting set       Write the public-hub flag (admin key required)
  share             Print or open the shareable public hub link
  hub               Open the interactive model hub dashboard
  version           Print version
  completion        Generate shell completion scripts (bash|zsh|fish)
  help              Show this help

Flags:
  --config PATH     Path to YAML config file (or MODELHUB_CONFIG env var; default: ~/.config/modelhub/config.yml)
  --key KEY         Access token (overrides the proxy.token_env variable)
  --log-level L     Log level: debug|info|warn|error (per command)
  --json            JSON log output (per command)
`))
}

// commonFlags registers the flags shared by every subcommand.
func commonFlags(fs *flag.FlagSet) (cfgPath, key, logLevel *string, jsonOut *bool) {
	cfgPath = fs.String("config", "", "Path to YAML config file")
	key = fs.String("key", "", "Access token (overrides proxy.token_env)")
	logLevel = fs.String("log-level", "", "log level (overrides logging.level)")
	jsonOut = fs.Bool("json", false, "json logs")
	return
}

// newLogger resolves logger settings: flags win over the logging config section.
func newLogger(cfg *config.Config, levelFlag string, jsonFlag bool) *logging.Logger {
	level := levelFlag
	if level == "" {
		level = cfg.Logging.Level
	}
	jsonOut := jsonFlag || strings.EqualFold(cfg.Logging.Format, "json")
	return logging.New(level, jsonOut)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func resolveToken(cfg *config.Config, keyFlag string) string {
	if strings.TrimSpace(keyFlag) != "" {
		return strings.TrimSpace(keyFlag)
	}
	return cfg.Token()
}

func newClient(cfg *config.Config, token string) *proxy.Client {
	c := proxy.New(cfg.Proxy.BaseURL, token)
	if cfg.Network.TimeoutSeconds > 0 {
		c.WithHTTPClient(httpClientWithTimeout(cfg.Network.TimeoutSeconds))
	}
	ua := cfg.Network.UserAgent
	if ua == "" {
		ua = "modelhub/" + version
	}
	return c.WithUserAgent(ua)
}

func openCache(cfg *config.Config, log *logging.Logger) *cache.DB {
	if !cfg.Cache.Enabled {
		return nil
	}
	db, err := cache.Open(cfg)
	if err != nil {
		log.Warnf("cache unavailable: %v", err)
		return nil
	}
	return db
}

func handleConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: modelhub config [validate|print]")
	}
	sub := args[0]
	fs := flag.NewFlagSet("config "+sub, flag.ContinueOnError)
	cfgPath, _, _, _ := commonFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	switch sub {
	case "validate":
		fmt.Println("config OK")
		return nil
	case "print":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown config subcommand: %s", sub)
	}
}

func handleModels(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	cfgPath, key, logLevel, jsonLogs := commonFlags(fs)
	asJSON := fs.Bool("output-json", false, "print the listing as JSON")
	cached := fs.Bool("cached", false, "list from the local cache without contacting the proxy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg, *logLevel, *jsonLogs)
	db := openCache(cfg, log)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	var groups []proxy.ModelGroup
	switch {
	case *cached:
		if db == nil {
			return errors.New("--cached requires cache.enabled in the config")
		}
		groups, err = db.ListModelGroups()
		if err != nil {
			return err
		}
	default:
		token := resolveToken(cfg, *key)
		client := newClient(cfg, token)
		groups, err = client.ModelGroups(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			if cerr := db.ReplaceModelGroups(groups); cerr != nil {
				log.Warnf("cache write failed: %v", cerr)
			}
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL GROUP\tMODE\tFUNCS\tVISION\tMAX IN\tMAX OUT")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ModelGroup, g.Mode,
			yesNo(g.SupportsFunctionCalling), yesNo(g.SupportsVision),
			limit(g.MaxInputTokens), limit(g.MaxOutputTokens))
	}
	return tw.Flush()
}

func handleSetting(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: modelhub setting [get|set <true|false>]")
	}
	sub := args[0]
	fs := flag.NewFlagSet("setting "+sub, flag.ContinueOnError)
	cfgPath, key, logLevel, jsonLogs := commonFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg, *logLevel, *jsonLogs)
	token := resolveToken(cfg, *key)
	client := newClient(cfg, token)

	switch sub {
	case "get":
		v, err := client.GetSetting(ctx, proxy.SettingPublicModelHub)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %v\n", proxy.SettingPublicModelHub, v)
		return nil
	case "set":
		if fs.NArg() < 1 {
			return errors.New("usage: modelhub setting set <true|false>")
		}
		if !cfg.Proxy.AdminView {
			return errors.New("setting writes require proxy.admin_view: true")
		}
		value, err := strconv.ParseBool(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("invalid value %q: %v", fs.Arg(0), err)
		}
		if err := client.UpdateSetting(ctx, proxy.SettingPublicModelHub, value); err != nil {
			return err
		}
		log.Infof("%s set to %v", proxy.SettingPublicModelHub, value)
		fmt.Printf("%s: %v\n", proxy.SettingPublicModelHub, value)
		return nil
	default:
		return fmt.Errorf("unknown setting subcommand: %s", sub)
	}
}

func handleShare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	cfgPath, key, logLevel, jsonLogs := commonFlags(fs)
	doOpen := fs.Bool("open", false, "open the share link in the browser")
	doCopy := fs.Bool("copy", false, "copy the share link to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg, *logLevel, *jsonLogs)
	token := resolveToken(cfg, *key)
	if token == "" {
		return errors.New("no access token; pass --key or set the proxy.token_env variable")
	}

	link := hub.ShareLink(cfg.Proxy.BaseURL, token)
	// Only the placeholder form goes to stdout/logs; the real key stays off
	// the terminal unless explicitly copied or opened.
	fmt.Println(hub.ShareLinkTemplate(cfg.Proxy.BaseURL))
	if *doCopy {
		if err := clipboard.WriteAll(link); err != nil {
			return err
		}
		log.Infof("share link copied to clipboard")
	}
	if *doOpen {
		log.Infof("opening %s", logging.RedactURL(link))
		return open.Run(link)
	}
	return nil
}

func handleHub(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hub", flag.ContinueOnError)
	cfgPath, key, logLevel, jsonLogs := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg, *logLevel, *jsonLogs)
	token := resolveToken(cfg, *key)
	client := newClient(cfg, token)
	db := openCache(cfg, log)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	p := tea.NewProgram(tui.New(cfg, log, client, db, token), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func httpClientWithTimeout(seconds int) *http.Client {
	return &http.Client{Timeout: time.Duration(seconds) * time.Second}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func limit(p *int64) string {
	if p == nil {
		return "N/A"
	}
	return humanize.Comma(*p)
}
