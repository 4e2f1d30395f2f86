// Command pricegrid runs the price-comparison pipeline from the terminal:
// collect raw retailer data, process it into a comparison table, or both.
package main

func main() {
	Execute()
}
