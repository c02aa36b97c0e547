// Package snippets renders the usage-sample tabs shown in the model detail
// view. Each tab is a fixed template with the selected model group's
// identifier (and the proxy base URL) substituted in.
package snippets

import (
	"fmt"
	"strings"
)

// Tab is one rendered code-sample tab.
type Tab struct {
	Title string
	Body  string
}

// BaseURLPlaceholder is used when the caller has no configured base URL.
const BaseURLPlaceholder = "http://0.0.0.0:4000"

// Tabs builds the four detail tabs for a model group. Params are rendered one
// per line in fetch order; an empty sequence yields an empty tab body.
func Tabs(modelGroup string, params []string, baseURL string) []Tab {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = BaseURLPlaceholder
	}
	return []Tab{
		{Title: "OpenAI Python SDK", Body: openAISDK(modelGroup, base)},
		{Title: "Supported OpenAI params", Body: SupportedParams(params)},
		{Title: "LlamaIndex", Body: llamaIndex(modelGroup, base)},
		{Title: "Langchain Py", Body: langchain(modelGroup, base)},
	}
}

// SupportedParams joins the supported_openai_params sequence, one per line,
// preserving fetch order.
func SupportedParams(params []string) string {
	return strings.Join(params, "\n")
}

func openAISDK(model, base string) string {
	return fmt.Sprintf(`import openai
client = openai.OpenAI(
    api_key="your_api_key",
    base_url="%s" # proxy base url
)

response = client.chat.completions.create(
    model="%s", # model to send to the proxy
    messages = [
        {
            "role": "user",
            "content": "this is a test request, write a short poem"
        }
    ]
)

print(response)`, base, model)
}

func llamaIndex(model, base string) string {
	return fmt.Sprintf(`import os, dotenv

from llama_index.llms import AzureOpenAI
from llama_index.embeddings import AzureOpenAIEmbedding
from llama_index import VectorStoreIndex, SimpleDirectoryReader

llm = AzureOpenAI(
    engine="%s",               # model_name on proxy
    temperature=0.0,
    azure_endpoint="%s",       # proxy base url
    api_key="your_api_key",
    api_version="2023-07-01-preview",
)

documents = SimpleDirectoryReader("llama_index_data").load_data()
index = VectorStoreIndex.from_documents(documents)
query_engine = index.as_query_engine()

response = query_engine.query("What did the author do growing up?")
print(response)`, model, base)
}

func langchain(model, base string) string {
	return fmt.Sprintf(`from langchain.chat_models import ChatOpenAI
from langchain.prompts.chat import (
    ChatPromptTemplate,
    HumanMessagePromptTemplate,
    SystemMessagePromptTemplate,
)
from langchain.schema import HumanMessage, SystemMessage

chat = ChatOpenAI(
    openai_api_base="%s",
    model = "%s",
    temperature=0.1
)

messages = [
    SystemMessage(
        content="You are a helpful assistant that im using to make a test request to."
    ),
    HumanMessage(
        content="test from proxy. tell me why it's amazing in 1 sentence"
    ),
]
response = chat(messages)

print(response)`, base, model)
}
