package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandConvert はスケジュールCSVをJSONデータセットへ変換することを示す。
	CommandConvert Command = "convert"
	// CommandProps はデータセットからフィルタ選択肢ファイルを生成することを示す。
	CommandProps Command = "props"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "convert":
		return CommandConvert
	case "props":
		return CommandProps
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
