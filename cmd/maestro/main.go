package main

import "github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/cli"

func main() {
	cli.Execute()
}
