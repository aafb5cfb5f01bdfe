package main

import "github.com/BielosX/wombat/home-scraper/src/scraper"

func main() {
	scraper.Main("rankings", scraper.Rankings)
}
