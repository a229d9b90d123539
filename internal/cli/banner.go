package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const version = "0.3.0"

const bannerArt = `
                 _       _                 _     _
 _ __ ___   __ _(_)_ __ | |_ __ _ ___ ___(_)___| |_
| '_ ` + "`" + ` _ \ / _` + "`" + ` | | '_ \| __/ _` + "`" + ` / __/ __| / __| __|
| | | | | | (_| | | | | | || (_| \__ \__ \ \__ \ |_
|_| |_| |_|\__,_|_|_| |_|\__\__,_|___/___/_|___/\__|
`

type bannerInfo struct {
	Listen    string
	Provider  string
	ZabbixURL string
}

// printBanner writes the startup banner: decorated on interactive
// terminals, a single plain line otherwise so service logs stay clean.
func printBanner(w io.Writer, info bannerInfo) {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintf(w, "%s\n", bannerArt)
		fmt.Fprintf(w, "  maintassist v%s\n", version)
		fmt.Fprintf(w, "  listen:   %s\n", info.Listen)
		fmt.Fprintf(w, "  provider: %s\n", info.Provider)
		fmt.Fprintf(w, "  zabbix:   %s\n\n", info.ZabbixURL)
		return
	}
	fmt.Fprintf(w, "maintassist v%s listening on %s (provider %s, zabbix %s)\n",
		version, info.Listen, info.Provider, info.ZabbixURL)
}
