package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/matching"
	"github.com/spigell/offer-matcher/internal/resume"
	"go.uber.org/zap"
)

const (
	PromptShowReport    = "Show report"
	PromptRecommend     = "Recommend other positions"
	PromptSaveReport    = "Save report to file"
	PromptShowAnalysis  = "Show raw analysis"
	PromptExit          = "Exit"
	defaultReportOutput = "offer-report.md"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptRecommend, PromptSaveReport, PromptShowAnalysis, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze how well a job offer fits a resume and render a report",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

type analyzeOptions struct {
	companyName string
	companyURL  string
	resumePath  string
	jobText     string
	preferences ai.Preferences
	format      string
	output      string
	topK        int
	autoApprove bool
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("company", "c", "", "company name, e.g. 腾讯")
	analyzeCmd.Flags().String("company-url", "", "company site; resolved for well-known companies when empty")
	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx, txt)")
	analyzeCmd.Flags().String("job", "", "job description text")
	analyzeCmd.Flags().String("job-file", "", "file with the job description")
	analyzeCmd.Flags().String("salary", "", "expected salary")
	analyzeCmd.Flags().String("location", "", "preferred location")
	analyzeCmd.Flags().Bool("overtime", false, "overtime is acceptable")
	analyzeCmd.Flags().StringP("format", "f", "", "report format: markdown, pdf or html (asked when empty)")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().IntP("top-k", "k", matching.DefaultTopK, "number of positions to recommend")
	analyzeCmd.Flags().BoolP("yes", "y", false, "do not ask anything: render the report and the recommendations")

	analyzeCmd.MarkFlagRequired("resume")
}

func analyze(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := newLogger("stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	opts, err := analyzeOptionsFrom(cmd)
	if err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}

	d, err := newDeps(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing components", zap.Error(err))
	}
	defer d.Close()

	logger.Info("starting the offer analysis", zap.String("version", version), zap.String("company", opts.companyName))

	record, err := d.parser.ParseFile(ctx, opts.resumePath)
	if err != nil {
		logger.Fatal("parsing resume", zap.String("path", opts.resumePath), zap.Error(err))
	}
	logger.Info("parsed resume", zap.Strings("skills", record.Skills), zap.Int("education", len(record.Education)))

	profile := company.NewProfile(opts.companyName, opts.companyURL)
	if opts.companyName != "" {
		profile, err = d.companies.Fetch(ctx, opts.companyName, opts.companyURL, true)
		if err != nil {
			logger.Fatal("fetching company info", zap.Error(err))
		}
	}

	assessment, err := d.engine.AnalyzeMatch(ctx, matching.MatchInput{
		Resume:         record,
		JobDescription: opts.jobText,
		Company:        profile,
		Preferences:    opts.preferences,
	})
	if err != nil {
		logger.Fatal("analyzing the match", zap.Error(err))
	}

	logger.Info("match analysis finished",
		zap.Int("overall_score", assessment.OverallScore),
		zap.String("decision", assessment.Decision),
	)

	if opts.autoApprove {
		if err := writeReport(d.engine, assessment, reportFormat(opts.format), opts.output); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		if err := recommend(ctx, d.engine, record, profile, opts.topK); err != nil {
			logger.Fatal("recommending positions", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, d, opts, record, profile, assessment); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, d *deps, opts analyzeOptions, record *resume.Record, profile *company.Profile, assessment *ai.Assessment) error {
	switch action {
	case PromptShowReport:
		format, err := chooseFormat(opts.format)
		if err != nil {
			return err
		}
		return writeReport(d.engine, assessment, format, "")
	case PromptSaveReport:
		format, err := chooseFormat(opts.format)
		if err != nil {
			return err
		}
		output := opts.output
		if output == "" {
			output = defaultReportOutput
		}
		return writeReport(d.engine, assessment, format, output)
	case PromptRecommend:
		return recommend(ctx, d.engine, record, profile, opts.topK)
	case PromptShowAnalysis:
		fmt.Println(assessment.RawAnalysis)
		return nil
	case PromptExit:
		d.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func chooseFormat(preset string) (ai.ReportFormat, error) {
	if preset != "" {
		return reportFormat(preset), nil
	}

	items := make([]string, len(ai.ReportFormats))
	for i, f := range ai.ReportFormats {
		items[i] = string(f)
	}

	formatPrompt := promptui.Select{
		Label: "Choose a report format",
		Items: items,
	}

	_, selected, err := formatPrompt.Run()
	if err != nil {
		return "", err
	}
	return ai.ReportFormat(selected), nil
}

func reportFormat(s string) ai.ReportFormat {
	if s = strings.ToLower(strings.TrimSpace(s)); s == "" {
		return ai.FormatMarkdown
	}
	return ai.ReportFormat(s)
}

func writeReport(engine *matching.Engine, assessment *ai.Assessment, format ai.ReportFormat, output string) error {
	report := engine.GenerateReport(assessment, format)

	if output == "" {
		fmt.Println(report.Content)
		return nil
	}

	if err := os.WriteFile(output, []byte(report.Content), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", output, err)
	}
	fmt.Printf("report saved to %s\n", output)
	return nil
}

func recommend(ctx context.Context, engine *matching.Engine, record *resume.Record, profile *company.Profile, topK int) error {
	recommendations, err := engine.RecommendPositions(ctx, record, profile, topK)
	if err != nil {
		return err
	}

	if recommendations.Message != "" {
		fmt.Println(recommendations.Message)
	}
	for i, item := range recommendations.Items {
		fmt.Printf("%d. %s (%d/100) %s\n", i+1, item.Title, item.MatchScore, item.Reason)
	}
	return nil
}

func analyzeOptionsFrom(cmd *cobra.Command) (analyzeOptions, error) {
	flags := cmd.Flags()

	opts := analyzeOptions{}
	opts.companyName, _ = flags.GetString("company")
	opts.companyURL, _ = flags.GetString("company-url")
	opts.resumePath, _ = flags.GetString("resume")
	opts.jobText, _ = flags.GetString("job")
	opts.preferences.ExpectedSalary, _ = flags.GetString("salary")
	opts.preferences.Location, _ = flags.GetString("location")
	opts.preferences.OvertimeAcceptable, _ = flags.GetBool("overtime")
	opts.format, _ = flags.GetString("format")
	opts.output, _ = flags.GetString("output")
	opts.topK, _ = flags.GetInt("top-k")
	opts.autoApprove, _ = flags.GetBool("yes")

	if jobFile, _ := flags.GetString("job-file"); jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return opts, fmt.Errorf("reading job description: %w", err)
		}
		opts.jobText = string(data)
	}

	if strings.TrimSpace(opts.jobText) == "" {
		return opts, errors.New("a job description is required (--job or --job-file)")
	}

	return opts, nil
}
