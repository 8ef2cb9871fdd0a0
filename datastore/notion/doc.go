/*
Package notion provides a Notion implementation of the datastore.NoteStore interface.

Exists issues one database query with a single text-equality filter on the title
property:

	{"filter": {"property": "Name", "rich_text": {"equals": "2025-04-28 Mon"}}, "page_size": 1}

Create inserts one page:

	{
	    "parent": {"type": "database_id", "database_id": "<id>"},
	    "properties": {
	        "Name": {"type": "title", "title": [{"type": "text", "text": {"content": "2025-04-28 Mon"}}]},
	        "Date": {"type": "date", "date": {"start": "2025-04-28", "end": null}}
	    }
	}

Property names come from config.Schema. Neither call is retried by this package.
*/
package notion
