package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Altair29/J-GLOW-sub002/internal/domain/wizard"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
	"github.com/Altair29/J-GLOW-sub002/internal/usecase"
)

var replayCmd = &cobra.Command{
	Use:   "replay <操作スクリプト>",
	Short: "ウィザードの操作スクリプトを再生し、各操作後の画面を表示します",
	Long: `操作スクリプト(YAML)の set / next / back / jump / generate を順にウィザードへ適用し、
ステップ・タブ・エラー・PDF生成の状態を1操作ごとに表示します。generate ではPDFを実際に生成します。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		renderer := newLazyRenderer(&env.cfg.Renderer)
		defer func() {
			if err := renderer.Close(); err != nil {
				env.logger.Warn("ブラウザの終了に失敗しました", "error", err)
			}
		}()

		deps, err := newWizardDeps(env, renderer)
		if err != nil {
			return err
		}

		uc := usecase.NewReplayScriptUseCase(usecase.ReplayArgs{
			Loader:    deps.loader,
			Parser:    deps.parser,
			Machine:   deps.machine,
			Assembler: deps.assembler,
			Document:  infra.NewHTMLDocument(),
			Out:       cmd.OutOrStdout(),
			Logger:    env.logger,
		})
		s, err := uc.Run(context.Background(), args[0])
		if err != nil {
			return err
		}

		if s.Generation.Status == wizard.GenerationSucceeded && s.Generation.Artifact != nil {
			exporter := infra.NewPDFFileExporter(env.cfg.OutputDir)
			path, err := exporter.Save("replay", s.Generation.Artifact.Filename, s.Generation.Artifact.Content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF: %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
