// Package notifier posts the day's QT reading to notification channels.
//
// Twitter posts go through OAuth1 with a 280 character limit. SNS messages are
// published to a topic and Telegram messages sent to a chat, both with the
// full reading. The dry-run notifier prints the message instead of sending it.
package notifier
