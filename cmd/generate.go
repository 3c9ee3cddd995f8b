package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/model"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/usecase"
)

var languages []string

var generateCmd = &cobra.Command{
	Use:   "generate <回答ファイル>",
	Short: "回答ファイルから多言語の労働条件通知書PDFを生成します",
	Long: `回答ファイルをウィザードの確認ステップまで進め、指定した言語(省略時は日本語以外の全言語)の
日本語併記PDFを生成します。生成の記録は設定の保存先(memory / redis / sqlite)に残ります。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		langs := make([]model.Language, 0, len(languages))
		for _, l := range languages {
			langs = append(langs, model.Language(l))
		}

		repo, closeStore, err := openJobStore(ctx, env)
		if err != nil {
			return err
		}
		defer closeStore()

		// PDFレンダラー初期化
		renderer, err := infra.NewPDFRenderer(&env.cfg.Renderer)
		if err != nil {
			return fmt.Errorf("PDFレンダラーの初期化に失敗しました: %w", err)
		}
		defer renderer.Close()

		deps, err := newWizardDeps(env, renderer)
		if err != nil {
			return err
		}

		uc := usecase.NewGenerateNoticeUseCase(usecase.GenerateArgs{
			Loader:    deps.loader,
			Parser:    deps.parser,
			Machine:   deps.machine,
			Assembler: deps.assembler,
			Repo:      repo,
			Exporter:  infra.NewPDFFileExporter(env.cfg.OutputDir),
			Cfg:       env.cfg.Batch,
			Logger:    env.logger,
		})
		outcomes, runErr := uc.Run(ctx, args[0], langs)

		out := cmd.OutOrStdout()
		for _, o := range outcomes {
			switch o.Status {
			case model.GenerationJobStatusSuccess:
				fmt.Fprintf(out, "%s %s %s\n", color.New(color.FgGreen).Sprint("✓"), o.Language.Label(), o.Path)
			default:
				fmt.Fprintf(out, "%s %s %s\n", color.New(color.FgRed).Sprint("×"), o.Language.Label(), o.Failure)
			}
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringSliceVarP(&languages, "lang", "l", nil, "生成する言語コード(例: en,vi)。省略時は全言語")
}
