package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ConserveLee/aim-assist/app/assist"
	"github.com/ConserveLee/aim-assist/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	configPath := flag.String("config", "", "optional YAML file with startup settings")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		s, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		settings = s
	}

	myApp := app.New()
	myWindow := myApp.NewWindow("Screen Recorder Alpha")
	myWindow.Resize(fyne.NewSize(820, 900))

	panel, cleanup := assist.NewAssistPanel(config.NewStore(settings))
	myWindow.SetOnClosed(cleanup)

	myWindow.SetContent(panel)
	myWindow.ShowAndRun()
}
