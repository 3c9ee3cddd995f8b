package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/usecase"
)

var (
	jobStatus  string
	recoverJob bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "PDF生成ジョブの記録を表示します",
	Long:  `指定したステータスの生成ジョブを一覧表示します。--recover を付けると中断で残ったPENDINGのジョブをFAILEDにします。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		repo, closeStore, err := openJobStore(ctx, env)
		if err != nil {
			return err
		}
		defer closeStore()

		uc := usecase.NewGenerationJobUseCase(repo, env.logger)
		out := cmd.OutOrStdout()

		if recoverJob {
			n, err := uc.RecoverPending(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "PENDINGのジョブ%d件をFAILEDにしました\n", n)
			return nil
		}

		status := model.GenerationJobStatus(strings.ToUpper(jobStatus))
		jobs, err := uc.List(ctx, status)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			fmt.Fprintf(out, "%s  %s  %s  %s  %s  %d\n",
				job.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				statusLabel(job.Status),
				job.Language,
				job.SessionID,
				job.Filename,
				job.Size,
			)
		}
		fmt.Fprintf(out, "%d件\n", len(jobs))
		return nil
	},
}

func statusLabel(status model.GenerationJobStatus) string {
	switch status {
	case model.GenerationJobStatusSuccess:
		return color.New(color.FgGreen).Sprint(status)
	case model.GenerationJobStatusFailed:
		return color.New(color.FgRed).Sprint(status)
	default:
		return color.New(color.FgYellow).Sprint(status)
	}
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.Flags().StringVarP(&jobStatus, "status", "s", string(model.GenerationJobStatusSuccess), "表示するステータス(PENDING / SUCCESS / FAILED)")
	jobsCmd.Flags().BoolVar(&recoverJob, "recover", false, "PENDINGのまま残ったジョブをFAILEDにします")
}
