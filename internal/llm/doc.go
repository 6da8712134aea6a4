// Package llm talks to chat-completion providers.
//
// Provider routing is explicit (openai, openrouter, ollama) with an "auto"
// mode that infers OpenRouter from an "sk-or-" key prefix. Each provider is
// reached through its own client library behind the ChatClient interface.
package llm
