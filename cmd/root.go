package cmd

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Enable debug mode"`

	Serve   ServeCmd   `cmd:"" default:"1"                    help:"Run the server"`
	Migrate MigrateCmd `cmd:"" help:"Run database migrations"`
	Export  ExportCmd  `cmd:"" help:"Export recipes to a file"`
	Backup  BackupCmd  `cmd:"" help:"Write a backup document to a file"`
	Restore RestoreCmd `cmd:"" help:"Restore a backup document from a file"`
}
