// Package cmd implements the command-line interface for virta.
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/virta-dl/virta/backend"
	"github.com/virta-dl/virta/color"
	"github.com/virta-dl/virta/constant"
	"github.com/virta-dl/virta/dl"
	"github.com/virta-dl/virta/extractor"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/geo"
	"github.com/virta-dl/virta/key"
	"github.com/virta-dl/virta/log"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
	"github.com/virta-dl/virta/style"
	"github.com/virta-dl/virta/util"
	"github.com/virta-dl/virta/version"
	"github.com/virta-dl/virta/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.Flags().Int("max-height", 0, "Maximum video height in pixels (0 disables the ceiling)")
	lo.Must0(viper.BindPFlag(key.SelectionMaxHeight, rootCmd.Flags().Lookup("max-height")))

	rootCmd.Flags().Int("max-bitrate", 0, "Maximum bitrate in kbps (0 disables the ceiling)")
	lo.Must0(viper.BindPFlag(key.SelectionMaxBitrate, rootCmd.Flags().Lookup("max-bitrate")))

	rootCmd.Flags().StringSliceP("backend", "b", []string{}, "Transfer backends to use, in order of preference")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return backend.Names(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.DownloadBackends, rootCmd.Flags().Lookup("backend")))

	rootCmd.Flags().Bool("latest", false, "Process only the newest clip of a playlist")

	rootCmd.Flags().StringP("output", "o", "", "Explicit output file path")
	rootCmd.Flags().StringP("destdir", "d", "", "Destination directory for generated filenames")
	lo.Must0(viper.BindPFlag(key.DownloadDestination, rootCmd.Flags().Lookup("destdir")))

	rootCmd.Flags().StringP("template", "t", "", "Output filename template")
	lo.Must0(viper.BindPFlag(key.DownloadTemplate, rootCmd.Flags().Lookup("template")))

	rootCmd.Flags().Bool("overwrite", false, "Overwrite existing output files")
	lo.Must0(viper.BindPFlag(key.DownloadOverwrite, rootCmd.Flags().Lookup("overwrite")))

	rootCmd.Flags().String("preferred-format", "", "Preferred container format for saved streams")
	lo.Must0(viper.BindPFlag(key.DownloadPreferredFormat, rootCmd.Flags().Lookup("preferred-format")))

	rootCmd.Flags().String("postprocess", "", "Command executed with the output file after a successful download")
	lo.Must0(viper.BindPFlag(key.DownloadPostprocess, rootCmd.Flags().Lookup("postprocess")))

	rootCmd.Flags().Int("start-position", 0, "Start the transfer at the given offset in seconds")
	rootCmd.Flags().Int("duration", 0, "Limit the transfer to the given number of seconds")

	rootCmd.Flags().Bool("pipe", false, "Stream to standard output instead of saving to a file")
	rootCmd.Flags().Bool("show-url", false, "Print the selected stream URLs instead of downloading")
	rootCmd.Flags().Bool("show-title", false, "Print the generated output titles instead of downloading")
	rootCmd.Flags().Bool("show-metadata", false, "Print clip metadata as JSON instead of downloading")
	rootCmd.MarkFlagsMutuallyExclusive("pipe", "show-url", "show-title", "show-metadata", "output")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the virta application.
var rootCmd = &cobra.Command{
	Use:   constant.Virta + " [flags] URL...",
	Short: "A command-line downloader for manifest-described media streams",
	Long: constant.Virta + " resolves content references into stream manifests, picks the best\n" +
		"flavor under the given quality ceilings and saves it with the first transfer\n" +
		"backend that succeeds.",
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		filters := buildFilters(cmd)
		handleErr(validateBackends(filters.EnabledBackends))

		ctx := buildContext(cmd)
		confirmOverwrite(ctx)

		pipe := lo.Must(cmd.Flags().GetBool("pipe"))
		if !pipe {
			CheckDependencies(filters.EnabledBackends)
		}

		downloader := dl.New(extractor.NewManifest(), locator(), dl.NewConsoleReporter())

		// Failed is sticky across the given references.
		overall := outcome.Success
		for _, ref := range args {
			code := run(cmd, downloader, ref, ctx, filters)
			if code != outcome.Success && overall != outcome.Failed {
				overall = code
			}
		}

		os.Exit(overall.External().ExitStatus())
	},
}

func run(cmd *cobra.Command, downloader *dl.Downloader, ref string, ctx *output.Context, filters media.Filters) outcome.Code {
	print := func(line string) { cmd.Println(line) }

	switch {
	case lo.Must(cmd.Flags().GetBool("show-url")):
		return downloader.URLs(ref, print, filters)
	case lo.Must(cmd.Flags().GetBool("show-title")):
		return downloader.Titles(ref, print, ctx, filters)
	case lo.Must(cmd.Flags().GetBool("show-metadata")):
		return downloader.Metadata(ref, print, filters)
	case lo.Must(cmd.Flags().GetBool("pipe")):
		return downloader.Pipe(ref, ctx, filters)
	default:
		return downloader.DownloadClips(ref, ctx, filters)
	}
}

func buildFilters(cmd *cobra.Command) media.Filters {
	filters := media.NewFilters(viper.GetStringSlice(key.DownloadBackends)...)
	filters.LatestOnly = lo.Must(cmd.Flags().GetBool("latest"))

	if h := viper.GetInt(key.SelectionMaxHeight); h > 0 {
		filters.MaxHeight = mo.Some(h)
	}
	if b := viper.GetInt(key.SelectionMaxBitrate); b > 0 {
		filters.MaxBitrate = mo.Some(b)
	}

	return filters
}

func buildContext(cmd *cobra.Command) *output.Context {
	dir := viper.GetString(key.DownloadDestination)
	if dir == "" {
		dir = where.Downloads()
	}

	ctx := output.NewContext(dir)
	ctx.Template = output.NewTemplate(viper.GetString(key.DownloadTemplate))
	ctx.Overwrite = viper.GetBool(key.DownloadOverwrite)
	ctx.PreferredFormat = viper.GetString(key.DownloadPreferredFormat)
	ctx.PostprocessCommand = viper.GetString(key.DownloadPostprocess)
	ctx.Limits = output.Limits{
		StartPosition: lo.Must(cmd.Flags().GetInt("start-position")),
		Duration:      lo.Must(cmd.Flags().GetInt("duration")),
	}

	if name := lo.Must(cmd.Flags().GetString("output")); name != "" {
		ctx.Filename = mo.Some(name)
	}

	return ctx
}

// validateBackends rejects unknown backend names, suggesting the closest
// known one.
func validateBackends(names []string) error {
	for _, name := range names {
		if lo.Contains(backend.Names(), name) {
			continue
		}

		msg := fmt.Sprintf("unknown backend %s", style.Fg(color.Red)(name))
		if matches := fuzzy.RankFindFold(name, backend.Names()); len(matches) > 0 {
			sort.Sort(matches)
			msg += fmt.Sprintf(", did you mean %s?", style.Fg(color.Yellow)(matches[0].Target))
		}

		return fmt.Errorf("%s", msg)
	}

	return nil
}

// confirmOverwrite asks before clobbering an explicitly named file that
// already exists. Non-interactive runs keep the skip behavior.
func confirmOverwrite(ctx *output.Context) {
	name, ok := ctx.Filename.Get()
	if !ok || ctx.Overwrite || !util.StdinIsTerminal() {
		return
	}

	if exists, err := filesystem.API().Exists(name); err != nil || !exists {
		return
	}

	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite it?", name),
	}
	if err := survey.AskOne(prompt, &confirmed); err == nil {
		ctx.Overwrite = confirmed
	}
}

func locator() media.Geolocator {
	if !viper.GetBool(key.GeoCheck) {
		return nil
	}
	return geo.NewLocator()
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)("error:"), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
