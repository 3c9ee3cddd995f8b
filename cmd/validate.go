package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Altair29/J-GLOW-sub002/internal/constants"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/usecase"
)

var reportName string

var validateCmd = &cobra.Command{
	Use:   "validate <回答ファイルのディレクトリ>",
	Short: "回答ファイルを一括チェックし、結果をCSVに保存します",
	Long: `ディレクトリ配下の回答ファイル(.yaml/.yml)をウィザードの各ステップで「次へ」を押したときと同じ規則でチェックし、
未入力・不正な項目を出力先ディレクトリのCSVファイルに書き出します。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		deps, err := newWizardDeps(env, nil)
		if err != nil {
			return err
		}

		name := env.cfg.Batch.ReportName
		if reportName != "" {
			name = reportName
		}
		reportPath := filepath.Join(env.cfg.OutputDir, name)
		exporter, err := infra.NewCSVExporter(reportPath, constants.GetValidationReportHeaders())
		if err != nil {
			return fmt.Errorf("CSVエクスポーターの初期化に失敗しました: %w", err)
		}

		uc := usecase.NewValidateAnswerFilesUseCase(usecase.ValidateArgs{
			Loader:   deps.loader,
			Parser:   deps.parser,
			Machine:  deps.machine,
			Exporter: exporter,
			Cfg:      env.cfg.Batch,
			Logger:   env.logger,
		})
		summary, err := uc.Run(context.Background(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "チェック件数: %d  %s  %s\n",
			summary.Total,
			color.New(color.FgGreen).Sprintf("OK %d", summary.Passed),
			color.New(color.FgRed).Sprintf("NG %d", summary.Failed),
		)
		fmt.Fprintf(out, "結果: %s\n", reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&reportName, "report", "r", "", "結果CSVのファイル名(省略時は設定のreport_name)")
}
