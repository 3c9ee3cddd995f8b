package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Altair29/J-GLOW-sub002/internal/config"
)

var configPath string

// rootCmdは、アプリケーションのエントリーポイントとなるルートコマンドです。
var rootCmd = &cobra.Command{
	Use:   "notice-wizard",
	Short: "外国人労働者向けの労働条件通知書を作成するツールです。",
	Long: `notice-wizardは、5ステップの入力ウィザードと同じ条件ルール・入力チェックで、
回答ファイルの一括チェック、操作スクリプトの再生、多言語の労働条件通知書PDFの生成を行います。`,
	SilenceUsage: true,
}

// Executeは、全てのサブコマンドをルートコマンドに追加し、フラグを適切に設定します。
// この関数はmain.main()から呼び出され、rootCmdに対して一度だけ実行される必要があります。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "設定ファイルのパス")
}
