/*
Package art is responsible for getting album cover art over the internet.

Two catalog backends are supported. The default one queries an iTunes
compatible album search API and fetches the high resolution version of the
thumbnail of the best matching result. The second one first queries the
MusicBrainz web service for releaseIDs using the artist name and album name
and then asks the Cover Art Archive for the front art of the first release
which has one.

The following APIs are used to achieve this packages' objective:

  - iTunes Search API: https://performance-partners.apple.com/search-api
  - MusicBrainz API: https://musicbrainz.org/doc/Development/XML_Web_Service/Version_2
  - Cover Art Archive: https://musicbrainz.org/doc/Cover_Art_Archive/
*/
package art
