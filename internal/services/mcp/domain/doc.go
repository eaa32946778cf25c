// Package domain maps MCP tool and resource calls onto the tour catalog and
// the booking dispatcher.
//
// Tool outputs are structured so assistants can render tours without scraping
// HTML. Booking goes through the same dispatcher as the website.
package domain
