package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node/runner"
	"boscoin.io/votebook/lib/storage"
)

const (
	defaultNetwork  string = "http"
	defaultPort     int    = 12345
	defaultHost     string = "0.0.0.0"
	defaultLogLevel string = "info"
)

var (
	flagNetworkID string = common.GetENVValue("VOTEBOOK_NETWORK_ID", "")
	flagLogLevel  string = common.GetENVValue("VOTEBOOK_LOG_LEVEL", defaultLogLevel)
	flagLogOutput string = common.GetENVValue("VOTEBOOK_LOG_OUTPUT", "")
	flagVerbose   bool   = common.GetENVValue("VOTEBOOK_VERBOSE", "0") == "1"
	flagBindURL   string = common.GetENVValue(
		"VOTEBOOK_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("VOTEBOOK_TLS_CERT", "votebook.crt")
	flagTLSKeyFile          string = common.GetENVValue("VOTEBOOK_TLS_KEY", "votebook.key")
	flagRateLimitAPI        string = common.GetENVValue("VOTEBOOK_RATE_LIMIT_API", common.DefaultRateLimitAPI)
	flagCache               string = common.GetENVValue("VOTEBOOK_CACHE", httpcache.AdapterNameMemory)
	flagCacheSize           string = common.GetENVValue("VOTEBOOK_CACHE_SIZE", strconv.Itoa(common.DefaultResultsCacheSize))
	flagCacheExpire         string = common.GetENVValue("VOTEBOOK_CACHE_EXPIRE", "5s")
	flagHistoryLimit        string = common.GetENVValue("VOTEBOOK_HISTORY_LIMIT", strconv.Itoa(common.DefaultHistoryLimit))
	flagNTPServer           string = common.GetENVValue("VOTEBOOK_NTP_SERVER", common.DefaultNTPServer)
	flagAccessLog           string = common.GetENVValue("VOTEBOOK_ACCESS_LOG", "")
)

var (
	nodeCmd *cobra.Command

	bindURL       *url.URL
	storageConfig *storage.Config
	nodeConfig    common.Config
	cacheExpire   time.Duration
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run votebook node",
		Run: func(c *cobra.Command, args []string) {
			if flagName, err := parseFlagsNode(); err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			if err := runNode(); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("VOTEBOOK_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind address ('http://0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, 'memory://' or 'file:///path'")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file, used with https")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file, used with https")
	nodeCmd.Flags().StringVar(&flagRateLimitAPI, "rate-limit-api", flagRateLimitAPI, "rate limit per client ip, '<limit>-<S|M|H>'")
	nodeCmd.Flags().StringVar(&flagCache, "cache", flagCache, "response cache, 'memory' or 'redis://<host:port>[,<host:port>...]'")
	nodeCmd.Flags().StringVar(&flagCacheSize, "cache-size", flagCacheSize, "size of the memory cache")
	nodeCmd.Flags().StringVar(&flagCacheExpire, "cache-expire", flagCacheExpire, "how long a cached response lives")
	nodeCmd.Flags().StringVar(&flagHistoryLimit, "history-limit", flagHistoryLimit, "maximum history records in a page")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "ntp server correcting the clock; empty to use the system clock as is")
	nodeCmd.Flags().StringVar(&flagAccessLog, "access-log", flagAccessLog, "write the http access log to this file")

	rootCmd.AddCommand(nodeCmd)
}

func parseBindURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be 'http' or 'https': %q", u.Scheme)
	}
	if len(u.Host) < 1 {
		return nil, errors.New("host must be given")
	}
	return u, nil
}

func parseFlagsNode() (flagName string, err error) {
	if len(flagNetworkID) < 1 {
		return "--network-id", errors.New("--network-id must be given")
	}

	if bindURL, err = parseBindURL(flagBindURL); err != nil {
		return "--bind", err
	}
	if bindURL.Scheme == "https" {
		if !common.IsExists(flagTLSCertFile) {
			return "--tls-cert", fmt.Errorf("file not found: %q", flagTLSCertFile)
		}
		if !common.IsExists(flagTLSKeyFile) {
			return "--tls-key", fmt.Errorf("file not found: %q", flagTLSKeyFile)
		}
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return "--storage", err
	}

	nodeConfig = common.NewConfig([]byte(flagNetworkID))
	nodeConfig.RateLimitAPI = flagRateLimitAPI

	if nodeConfig.ResultsCacheSize, err = strconv.Atoi(flagCacheSize); err != nil || nodeConfig.ResultsCacheSize < 1 {
		return "--cache-size", fmt.Errorf("positive number must be given: %q", flagCacheSize)
	}
	if nodeConfig.HistoryLimit, err = strconv.Atoi(flagHistoryLimit); err != nil || nodeConfig.HistoryLimit < 1 {
		return "--history-limit", fmt.Errorf("positive number must be given: %q", flagHistoryLimit)
	}
	if cacheExpire, err = time.ParseDuration(flagCacheExpire); err != nil {
		return "--cache-expire", err
	}

	if flagName, err = setLogging(flagLogLevel, flagLogOutput); err != nil {
		return
	}

	log.Info("Starting votebook")

	parsedFlags := []interface{}{}
	nodeCmd.Flags().VisitAll(func(f *pflag.Flag) {
		parsedFlags = append(parsedFlags, "\n\t"+f.Name, f.Value.String())
	})

	log.Debug("parsed flags:", parsedFlags...)

	// NOTE instead of set `http2.VerboseLogs`, just use
	// `GODEBUG="http2debug=2"`.
	if flagVerbose {
		http2.VerboseLogs = true
	}

	return "", nil
}

func newHTTPServer(r *runner.Runner) (*http.Server, error) {
	adapter, err := httpcache.NewAdapter(flagCache, nodeConfig.ResultsCacheSize)
	if err != nil {
		return nil, err
	}
	cache, err := httpcache.NewClient(httpcache.WithAdapter(adapter), httpcache.WithExpire(cacheExpire))
	if err != nil {
		return nil, err
	}

	options := []runner.HandlerOption{runner.WithCache(cache)}
	if len(flagAccessLog) > 0 {
		f, err := os.OpenFile(flagAccessLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		options = append(options, runner.WithAccessLog(f))
	}

	handler, err := r.Handler(options...)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              bindURL.Host,
		Handler:           handler,
		ReadHeaderTimeout: common.DefaultHTTPTimeout,
		IdleTimeout:       time.Minute,
	}
	if bindURL.Scheme == "https" {
		if err = http2.ConfigureServer(server, nil); err != nil {
			return nil, err
		}
	}

	return server, nil
}

func runNode() error {
	metrics.InitPrometheusMetrics()

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	var clock common.Clock = &common.SystemClock{}
	var ntpClock *common.NTPClock
	if len(flagNTPServer) > 0 {
		ntpClock = common.NewNTPClock(flagNTPServer)
		clock = ntpClock
	}

	r := runner.NewRunner(st, nodeConfig, clock)

	server, err := newHTTPServer(r)
	if err != nil {
		log.Crit("failed to create http server", "error", err)
		return err
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			r.Start()
			log.Info("listening", "bind", bindURL.String())

			var err error
			if bindURL.Scheme == "https" {
				err = server.ListenAndServeTLS(flagTLSCertFile, flagTLSKeyFile)
			} else {
				err = server.ListenAndServe()
			}
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		}, func(error) {
			r.Stop()

			ctx, cancel := context.WithTimeout(context.Background(), common.DefaultHTTPTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("failed to shut down http server", "error", err)
			}
		})
	}
	if ntpClock != nil {
		stop := make(chan struct{})
		g.Add(func() error {
			ntpClock.Start(common.DefaultNTPUpdateInterval, stop)
			return nil
		}, func(error) {
			close(stop)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	err = g.Run()
	log.Info("votebook stopped", "reason", err)

	return nil
}
