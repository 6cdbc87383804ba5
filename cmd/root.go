package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/liamg/portcheck/config"
	"github.com/liamg/portcheck/report"
	"github.com/liamg/portcheck/scan"
	"github.com/liamg/portcheck/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debug bool
var timeoutMS = int(scan.DefaultTimeout.Milliseconds())
var parallelism int
var protocolName = string(scan.DefaultProtocol)
var outputFormat = string(report.FormatTable)
var openOnly bool
var insecure bool
var hostInfo bool
var configPath string
var versionRequested bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&protocolName, "protocol", "P", protocolName, "Protocol for bare ports. Must be one of tcp, tls, udp, ssl")
	rootCmd.PersistentFlags().IntVarP(&timeoutMS, "timeout-ms", "t", timeoutMS, "Timeout for each port in MS")
	rootCmd.PersistentFlags().IntVarP(&parallelism, "workers", "w", parallelism, "Maximum ports checked at once, 0 for no limit")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "O", outputFormat, "Output format. Must be one of table, text, json")
	rootCmd.PersistentFlags().BoolVarP(&openOnly, "open-only", "o", openOnly, "Omit closed ports from the output")
	rootCmd.PersistentFlags().BoolVarP(&insecure, "insecure", "k", insecure, "Do not verify certificates for tls and ssl ports")
	rootCmd.PersistentFlags().BoolVarP(&hostInfo, "host-info", "", hostInfo, "Show the address and, for local hosts, the hardware address of the target")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "Path to a TOML config file")
}

var rootCmd = &cobra.Command{
	Use:   "portcheck <domain> [port|port=protocol]...",
	Short: "portcheck checks whether a host accepts connections on a set of ports",
	Long: `Checks whether a host accepts connections on a set of ports.

Ports may be given bare (22), with a protocol (443=tls) or comma separated (22,80).
Bare and explicit ports cannot be mixed. Without ports, 22, 80, 443, 8080 and 3306 are checked.`,
	Run: func(cmd *cobra.Command, args []string) {

		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Printf("portcheck %s\n", v)
			return
		}

		if len(args) == 0 {
			fmt.Println("Please specify a domain")
			os.Exit(1)
		}

		if err := run(cmd, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "" {
		level, _ := log.ParseLevel(cfg.LogLevel)
		log.SetLevel(level)
	}
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	protocol, ok := scan.ParseProtocol(cfg.Protocol)
	if !ok {
		return fmt.Errorf("Unknown protocol '%s'", cfg.Protocol)
	}

	session, err := scan.NewSession(args[0])
	if err != nil {
		return err
	}

	session = session.
		UseProtocol(protocol).
		WithTimeout(time.Millisecond * time.Duration(cfg.TimeoutMS)).
		WithParallelism(cfg.Workers).
		WithDialer(&scan.NetDialer{InsecureSkipVerify: cfg.Insecure})

	rawPorts := args[1:]
	if len(rawPorts) == 0 {
		rawPorts = cfg.Ports
	}

	portArgs, err := parsePortArgs(rawPorts)
	if err != nil {
		return err
	}

	r := report.Report{Domain: session.Domain()}

	if hostInfo {
		host, err := report.LookupHost(hostname(session.Domain()))
		if err != nil {
			log.Debugf("Host lookup failed for %s: %s", session.Domain(), err)
		} else {
			r.Host = &host
		}
	}

	startTime := time.Now()
	log.Debugf("Checking %s...", session.Domain())

	results, err := session.Check(context.Background(), portArgs...)
	if err != nil {
		return err
	}

	r.Results = results
	r.Elapsed = time.Since(startTime)

	if openOnly {
		r = r.OpenOnly()
	}

	return r.Write(os.Stdout, format)
}

// loadConfig merges the config file, if any, with flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if configPath == "" || flags.Changed("protocol") {
		cfg.Protocol = protocolName
	}
	if configPath == "" || flags.Changed("timeout-ms") {
		cfg.TimeoutMS = timeoutMS
	}
	if configPath == "" || flags.Changed("workers") {
		cfg.Workers = parallelism
	}
	if configPath == "" || flags.Changed("insecure") {
		cfg.Insecure = insecure
	}
	if configPath == "" || flags.Changed("output") {
		cfg.Output = outputFormat
	}

	return cfg, cfg.Validate()
}

// parsePortArgs turns command line ports into scan arguments. Explicit port=protocol pairs
// are gathered into a single mapping.
func parsePortArgs(raw []string) ([]scan.Arg, error) {
	args := []scan.Arg{}
	entries := []scan.Entry{}

	for _, selection := range raw {
		for _, r := range strings.Split(selection, ",") {
			r = strings.TrimSpace(r)
			if r == "" {
				return nil, fmt.Errorf("Invalid port selection: '%s'", selection)
			}
			if strings.Contains(r, "=") {
				parts := strings.SplitN(r, "=", 2)
				entries = append(entries, scan.Entry{Key: parts[0], Value: parts[1]})
				continue
			}
			args = append(args, scan.RawPort(r))
		}
	}

	if len(entries) > 0 {
		args = append(args, scan.Mapping(entries...))
	}

	return args, nil
}

func hostname(domain string) string {
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	if net.ParseIP(domain) != nil {
		return domain
	}
	if host, _, err := net.SplitHostPort(domain); err == nil {
		return host
	}
	return domain
}
